package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"syscall"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/fivetwenty-io/etcd-client/pkg/etcdclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output format constants.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// CreateClient builds an etcd client from the resolved configuration. When a
// username is configured without a password, the password is read from the
// terminal.
func CreateClient() (etcd.Client, error) {
	endpoints := viper.GetStringSlice("endpoints")
	username := viper.GetString("username")
	password := viper.GetString("password")

	if username != "" && password == "" {
		fmt.Print("Password: ")

		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}

		password = string(bytePassword)

		fmt.Println()
	}

	config := &etcd.Config{
		Endpoints: endpoints,
		Username:  username,
		Password:  password,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = &stderrLogger{}
	}

	client, err := etcdclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// flattenNodes walks a node tree depth first and returns the leaves and
// directories in key order.
func flattenNodes(node *etcd.Node) []etcd.Node {
	if node == nil {
		return nil
	}

	nodes := []etcd.Node{*node}

	children := make([]etcd.Node, len(node.Nodes))
	copy(children, node.Nodes)
	sort.Slice(children, func(i, j int) bool {
		return children[i].Key < children[j].Key
	})

	for i := range children {
		nodes = append(nodes, flattenNodes(&children[i])...)
	}

	return nodes
}

// stderrLogger writes client debug output to stderr for --verbose runs.
type stderrLogger struct{}

// Debug implements etcd.Logger.
func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

// Info implements etcd.Logger.
func (l *stderrLogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

// Warn implements etcd.Logger.
func (l *stderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

// Error implements etcd.Logger.
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(os.Stderr, " %s=%v", k, fields[k])
	}

	fmt.Fprintln(os.Stderr)
}
