package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the auth system",
		Long:  "Query, enable, and disable the cluster's authentication system",
	}

	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthEnableCommand())
	cmd.AddCommand(newAuthDisableCommand())

	return cmd
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the auth system is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthStatusCommand()
		},
	}
}

func runAuthStatusCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.Auth().Status(context.Background())
	if err != nil {
		return err
	}

	if resp.Data {
		_, _ = os.Stdout.WriteString("Authentication is enabled\n")
	} else {
		_, _ = os.Stdout.WriteString("Authentication is disabled\n")
	}

	return nil
}

func newAuthEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable the auth system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthEnableCommand()
		},
	}
}

func runAuthEnableCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.Auth().Enable(context.Background())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Authentication: %s\n", resp.Data)

	return nil
}

func newAuthDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable the auth system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthDisableCommand()
		},
	}
}

func runAuthDisableCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.Auth().Disable(context.Background())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Authentication: %s\n", resp.Data)

	return nil
}
