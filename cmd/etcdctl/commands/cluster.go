package commands

import (
	"context"
	"os"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewClusterHealthCommand creates the cluster-health command.
func NewClusterHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cluster-health",
		Short: "Check the health of each cluster endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClusterHealthCommand()
		},
	}
}

func runClusterHealthCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	results := client.Health(context.Background())

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(results)
	case OutputFormatYAML:
		return StandardYAMLRenderer(results)
	default:
		return renderHealthTable(results)
	}
}

func renderHealthTable(results []etcd.EndpointResult[etcd.Health]) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Endpoint", "Healthy", "Error")

	for _, result := range results {
		if result.Err != nil {
			_ = table.Append(result.Endpoint, "unreachable", result.Err.Error())

			continue
		}

		_ = table.Append(result.Endpoint, result.Response.Data.Health, "")
	}

	_ = table.Render()

	return nil
}

// NewVersionsCommand creates the versions command.
func NewVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Display the server version of each cluster endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersionsCommand()
		},
	}
}

func runVersionsCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	results := client.Versions(context.Background())

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(results)
	case OutputFormatYAML:
		return StandardYAMLRenderer(results)
	default:
		return renderVersionsTable(results)
	}
}

func renderVersionsTable(results []etcd.EndpointResult[etcd.VersionInfo]) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Endpoint", "Server Version", "Cluster Version", "Error")

	for _, result := range results {
		if result.Err != nil {
			_ = table.Append(result.Endpoint, "", "", result.Err.Error())

			continue
		}

		_ = table.Append(result.Endpoint,
			result.Response.Data.ServerVersion,
			result.Response.Data.ClusterVersion, "")
	}

	_ = table.Render()

	return nil
}
