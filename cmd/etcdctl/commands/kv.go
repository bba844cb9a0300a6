package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Retrieve the value of a key",
		Long:  "Retrieve the value of a key, or list the contents of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recursive, _ := cmd.Flags().GetBool("recursive")
			sorted, _ := cmd.Flags().GetBool("sort")
			quorum, _ := cmd.Flags().GetBool("quorum")

			return runGetCommand(args[0], etcd.GetOptions{
				Recursive: recursive,
				Sort:      sorted,
				Quorum:    quorum,
			})
		},
	}

	cmd.Flags().BoolP("recursive", "r", false, "list directory contents recursively")
	cmd.Flags().Bool("sort", false, "sort directory contents by key")
	cmd.Flags().Bool("quorum", false, "linearize the read through the leader")

	return cmd
}

func runGetCommand(key string, opts etcd.GetOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.KV().Get(context.Background(), key, opts)
	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewSetCommand creates the set command.
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set the value of a key",
		Long:  "Set the value of a key, creating it if it does not exist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetUint64("ttl")
			prevValue, _ := cmd.Flags().GetString("swap-with-value")
			prevIndex, _ := cmd.Flags().GetUint64("swap-with-index")

			return runSetCommand(args[0], args[1], ttl, etcd.CompareConditions{
				PrevValue: prevValue,
				PrevIndex: prevIndex,
			})
		},
	}

	cmd.Flags().Uint64("ttl", 0, "time to live in seconds (0 for no expiration)")
	cmd.Flags().String("swap-with-value", "", "require the current value to match before setting")
	cmd.Flags().Uint64("swap-with-index", 0, "require the current modified index to match before setting")

	return cmd
}

func runSetCommand(key, value string, ttl uint64, conditions etcd.CompareConditions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var resp *etcd.Response[etcd.KeyValueInfo]
	if conditions.IsZero() {
		resp, err = client.KV().Set(ctx, key, value, ttl)
	} else {
		resp, err = client.KV().CompareAndSwap(ctx, key, value, ttl, conditions)
	}

	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewMkCommand creates the mk command.
func NewMkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mk KEY VALUE",
		Short: "Create a new key",
		Long:  "Create a new key with the given value, failing if it already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetUint64("ttl")
			inOrder, _ := cmd.Flags().GetBool("in-order")

			return runMkCommand(args[0], args[1], ttl, inOrder)
		},
	}

	cmd.Flags().Uint64("ttl", 0, "time to live in seconds (0 for no expiration)")
	cmd.Flags().Bool("in-order", false, "create an in-order key under the given directory")

	return cmd
}

func runMkCommand(key, value string, ttl uint64, inOrder bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var resp *etcd.Response[etcd.KeyValueInfo]
	if inOrder {
		resp, err = client.KV().CreateInOrder(ctx, key, value, ttl)
	} else {
		resp, err = client.KV().Create(ctx, key, value, ttl)
	}

	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewMkdirCommand creates the mkdir command.
func NewMkdirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir KEY",
		Short: "Create a new directory",
		Long:  "Create a new empty directory, failing if the key already exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetUint64("ttl")

			return runMkdirCommand(args[0], ttl)
		},
	}

	cmd.Flags().Uint64("ttl", 0, "time to live in seconds (0 for no expiration)")

	return cmd
}

func runMkdirCommand(key string, ttl uint64) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.KV().CreateDir(context.Background(), key, ttl)
	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update KEY [VALUE]",
		Short: "Update an existing key",
		Long:  "Update the value or TTL of an existing key, failing if it does not exist",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetUint64("ttl")
			dir, _ := cmd.Flags().GetBool("dir")

			value := ""
			if len(args) > 1 {
				value = args[1]
			}

			return runUpdateCommand(args[0], value, ttl, dir)
		},
	}

	cmd.Flags().Uint64("ttl", 0, "time to live in seconds (0 for no expiration)")
	cmd.Flags().Bool("dir", false, "update a directory's TTL instead of a key's value")

	return cmd
}

func runUpdateCommand(key, value string, ttl uint64, dir bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var resp *etcd.Response[etcd.KeyValueInfo]
	if dir {
		resp, err = client.KV().UpdateDir(ctx, key, ttl)
	} else {
		resp, err = client.KV().Update(ctx, key, value, ttl)
	}

	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewRmCommand creates the rm command.
func NewRmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm KEY",
		Short: "Remove a key",
		Long:  "Remove a key-value pair, or a directory and its contents with --recursive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recursive, _ := cmd.Flags().GetBool("recursive")
			prevValue, _ := cmd.Flags().GetString("with-value")
			prevIndex, _ := cmd.Flags().GetUint64("with-index")

			return runRmCommand(args[0], recursive, etcd.CompareConditions{
				PrevValue: prevValue,
				PrevIndex: prevIndex,
			})
		},
	}

	cmd.Flags().BoolP("recursive", "r", false, "remove directories and their contents")
	cmd.Flags().String("with-value", "", "require the current value to match before removing")
	cmd.Flags().Uint64("with-index", 0, "require the current modified index to match before removing")

	return cmd
}

func runRmCommand(key string, recursive bool, conditions etcd.CompareConditions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var resp *etcd.Response[etcd.KeyValueInfo]
	if conditions.IsZero() {
		resp, err = client.KV().Delete(ctx, key, recursive)
	} else {
		resp, err = client.KV().CompareAndDelete(ctx, key, conditions)
	}

	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewRmdirCommand creates the rmdir command.
func NewRmdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir KEY",
		Short: "Remove an empty directory",
		Long:  "Remove an empty directory or a key-value pair, failing if the directory has contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRmdirCommand(args[0])
		},
	}
}

func runRmdirCommand(key string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	resp, err := client.KV().DeleteDir(context.Background(), key)
	if err != nil {
		return err
	}

	return outputKeyValueInfo(resp)
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch KEY",
		Short: "Watch a key for changes",
		Long:  "Block until the key changes and print its new state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			afterIndex, _ := cmd.Flags().GetUint64("after-index")
			recursive, _ := cmd.Flags().GetBool("recursive")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			forever, _ := cmd.Flags().GetBool("forever")

			return runWatchCommand(args[0], etcd.WatchOptions{
				AfterIndex: afterIndex,
				Recursive:  recursive,
				Timeout:    timeout,
			}, forever)
		},
	}

	cmd.Flags().Uint64("after-index", 0, "watch for changes after this etcd index")
	cmd.Flags().BoolP("recursive", "r", false, "watch the key and all of its children")
	cmd.Flags().Duration("timeout", 0, "give up waiting after this duration")
	cmd.Flags().Bool("forever", false, "keep watching after each change")

	return cmd
}

func runWatchCommand(key string, opts etcd.WatchOptions, forever bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	for {
		resp, err := client.KV().Watch(ctx, key, opts)
		if err != nil {
			return err
		}

		if err := outputKeyValueInfo(resp); err != nil {
			return err
		}

		if !forever {
			return nil
		}

		if resp.Data.Node != nil {
			opts.AfterIndex = resp.Data.Node.ModifiedIndex + 1
		}
	}
}

func outputKeyValueInfo(resp *etcd.Response[etcd.KeyValueInfo]) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(resp)
	case OutputFormatYAML:
		return StandardYAMLRenderer(resp)
	default:
		return renderKeyValueTable(resp)
	}
}

func renderKeyValueTable(resp *etcd.Response[etcd.KeyValueInfo]) error {
	if resp.Data.Node == nil {
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", resp.Data.Action)

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Value", "Dir", "TTL", "Modified Index")

	for _, node := range flattenNodes(resp.Data.Node) {
		ttl := ""
		if node.TTL > 0 {
			ttl = (time.Duration(node.TTL) * time.Second).String()
		}

		_ = table.Append(node.Key, node.Value,
			strconv.FormatBool(node.Dir), ttl,
			strconv.FormatUint(node.ModifiedIndex, 10))
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s (etcd index %d):\n\n", resp.Data.Action, resp.ClusterInfo.EtcdIndex)

	_ = table.Render()

	return nil
}
