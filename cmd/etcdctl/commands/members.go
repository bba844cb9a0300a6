package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMembersCommand creates the members command group.
func NewMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage cluster membership",
		Long:  "List, add, remove, and update members of the cluster",
	}

	cmd.AddCommand(newMemberListCommand())
	cmd.AddCommand(newMemberAddCommand())
	cmd.AddCommand(newMemberRemoveCommand())
	cmd.AddCommand(newMemberUpdateCommand())

	return cmd
}

func newMemberListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cluster members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberListCommand()
		},
	}
}

func runMemberListCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.Members().List(context.Background())
	if err != nil {
		return err
	}

	return outputMembers(resp.Data)
}

func outputMembers(members []etcd.Member) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(members)
	case OutputFormatYAML:
		return StandardYAMLRenderer(members)
	default:
		return renderMemberTable(members)
	}
}

func renderMemberTable(members []etcd.Member) error {
	if len(members) == 0 {
		_, _ = os.Stdout.WriteString("No members found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Peer URLs", "Client URLs")

	for _, member := range members {
		_ = table.Append(member.ID, member.Name,
			strings.Join(member.PeerURLs, ","),
			strings.Join(member.ClientURLs, ","))
	}

	_ = table.Render()

	return nil
}

func newMemberAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add PEER_URL [PEER_URL...]",
		Short: "Add a member to the cluster",
		Long:  "Add a new member to the cluster with the given peer URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberAddCommand(args)
		},
	}
}

func runMemberAddCommand(peerURLs []string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	info, err := client.Members().Add(context.Background(), peerURLs)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Added member with peer URLs %s (etcd index %d)\n",
		strings.Join(peerURLs, ","), info.EtcdIndex)

	return nil
}

func newMemberRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove MEMBER_ID",
		Short: "Remove a member from the cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberRemoveCommand(args[0])
		},
	}
}

func runMemberRemoveCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	_, err = client.Members().Remove(context.Background(), id)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Removed member %s\n", id)

	return nil
}

func newMemberUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update MEMBER_ID PEER_URL [PEER_URL...]",
		Short: "Update a member's peer URLs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemberUpdateCommand(args[0], args[1:])
		},
	}
}

func runMemberUpdateCommand(id string, peerURLs []string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	_, err = client.Members().Update(context.Background(), id, peerURLs)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Updated member %s with peer URLs %s\n", id, strings.Join(peerURLs, ","))

	return nil
}
