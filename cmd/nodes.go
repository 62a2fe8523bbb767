package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"dns-fleet/core/node"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addNode    node.Node
	yesConfirm bool
)

// nodesCmd is the parent command for registry operations.
var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Manage the node registry",
	Long: `List, add and remove the DNS nodes of the cluster.
Changes persist only with CLUSTER_REGISTRY=database.`,
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered nodes",
	RunE:  runNodesList,
}

var nodesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register or replace a node",
	Long: `Register or replace a node.

Example:
  nodes add --id ns3 --url http://10.0.0.4:5380 --token <api token>`,
	RunE: runNodesAdd,
}

var nodesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a node",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodesRemove,
}

func init() {
	nodesCmd.AddCommand(nodesListCmd, nodesAddCmd, nodesRemoveCmd)

	f := nodesAddCmd.Flags()
	f.StringVar(&addNode.ID, "id", "", "Node id")
	f.StringVar(&addNode.Name, "name", "", "Display name (defaults to the id)")
	f.StringVar(&addNode.URL, "url", "", "Base URL of the node's web API")
	f.StringVar(&addNode.Token, "token", "", "API token")
	_ = nodesAddCmd.MarkFlagRequired("id")
	_ = nodesAddCmd.MarkFlagRequired("url")

	nodesRemoveCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Skip the confirmation prompt")

	RootCmd.AddCommand(nodesCmd)
}

func runNodesList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	list, err := svc.nodes.Service().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}
	for _, n := range list {
		l.Info("Node",
			zap.String("id", n.ID),
			zap.String("name", n.DisplayName()),
			zap.String("url", n.URL),
			zap.Bool("token", n.Token != ""),
		)
	}
	l.Info("Registered nodes", zap.Int("count", len(list)))
	return nil
}

func runNodesAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	n, err := svc.nodes.Service().Add(ctx, addNode)
	if err != nil {
		return fmt.Errorf("failed to add node: %w", err)
	}
	l.Info("Node saved", zap.String("id", n.ID), zap.String("url", n.URL))
	return nil
}

func runNodesRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	if !confirmDestructiveAction(fmt.Sprintf("remove node %s", args[0])) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	if err := svc.nodes.Service().Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove node: %w", err)
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(action string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to %s: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
