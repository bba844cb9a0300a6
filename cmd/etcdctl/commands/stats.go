package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewStatsCommand creates the stats command group.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Display cluster statistics",
		Long:  "Display statistics about the cluster leader, individual members, and their stores",
	}

	cmd.AddCommand(newStatsLeaderCommand())
	cmd.AddCommand(newStatsSelfCommand())
	cmd.AddCommand(newStatsStoreCommand())

	return cmd
}

func newStatsLeaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leader",
		Short: "Display leader and follower statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsLeaderCommand()
		},
	}
}

func runStatsLeaderCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.Stats().Leader(context.Background())
	if err != nil {
		return err
	}

	return outputLeaderStats(&resp.Data)
}

func outputLeaderStats(stats *etcd.LeaderStats) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(stats)
	case OutputFormatYAML:
		return StandardYAMLRenderer(stats)
	default:
		return renderLeaderStatsTable(stats)
	}
}

func renderLeaderStatsTable(stats *etcd.LeaderStats) error {
	_, _ = fmt.Fprintf(os.Stdout, "Leader: %s\n", stats.Leader)

	if len(stats.Followers) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Follower", "Success", "Fail", "Latency Avg", "Latency Max")

	for id, follower := range stats.Followers {
		_ = table.Append(id,
			strconv.FormatUint(follower.Counts.Success, 10),
			strconv.FormatUint(follower.Counts.Fail, 10),
			fmt.Sprintf("%.6fs", follower.Latency.Average),
			fmt.Sprintf("%.6fs", follower.Latency.Maximum))
	}

	_, _ = os.Stdout.WriteString("\n")

	_ = table.Render()

	return nil
}

func newStatsSelfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "self",
		Short: "Display per-member statistics from each endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsSelfCommand()
		},
	}
}

func runStatsSelfCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	results := client.Stats().Self(context.Background())

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(results)
	case OutputFormatYAML:
		return StandardYAMLRenderer(results)
	default:
		return renderSelfStatsTable(results)
	}
}

func renderSelfStatsTable(results []etcd.EndpointResult[etcd.SelfStats]) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Endpoint", "Name", "ID", "State", "Leader", "Error")

	for _, result := range results {
		if result.Err != nil {
			_ = table.Append(result.Endpoint, "", "", "", "", result.Err.Error())

			continue
		}

		stats := result.Response.Data
		_ = table.Append(result.Endpoint, stats.Name, stats.ID, stats.State, stats.LeaderInfo.ID, "")
	}

	_ = table.Render()

	return nil
}

func newStatsStoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "store",
		Short: "Display store statistics from each endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsStoreCommand()
		},
	}
}

func runStatsStoreCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	results := client.Stats().Store(context.Background())

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(results)
	case OutputFormatYAML:
		return StandardYAMLRenderer(results)
	default:
		return renderStoreStatsTable(results)
	}
}

func renderStoreStatsTable(results []etcd.EndpointResult[etcd.StoreStats]) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Endpoint", "Gets", "Sets", "Deletes", "Expired", "Watchers", "Error")

	for _, result := range results {
		if result.Err != nil {
			_ = table.Append(result.Endpoint, "", "", "", "", "", result.Err.Error())

			continue
		}

		stats := result.Response.Data
		_ = table.Append(result.Endpoint,
			strconv.FormatUint(stats.GetSuccess+stats.GetFail, 10),
			strconv.FormatUint(stats.SetSuccess+stats.SetFail, 10),
			strconv.FormatUint(stats.DeleteSuccess+stats.DeleteFail, 10),
			strconv.FormatUint(stats.ExpireCount, 10),
			strconv.FormatUint(stats.Watchers, 10),
			"")
	}

	_ = table.Render()

	return nil
}
