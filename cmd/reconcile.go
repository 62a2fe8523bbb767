package cmd

import (
	"context"
	"fmt"
	"time"

	"dns-fleet/core/config"
	"dns-fleet/core/logger"
	"dns-fleet/core/reconcile"
	"dns-fleet/feature/cluster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logsLimit   int
	logsDedupe  bool
	logsNames   bool
	logsFilter  cluster.ViewFilter
	logsSince   time.Duration
	driftA      string
	driftB      string
	driftHints  bool
	driftSave   bool
	syncRefNode string
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile query logs and blocking configuration across nodes",
	Long: `Run the reconciliation engine once against the configured cluster and
print the result. Nodes that fail are reported and never abort the run.`,
}

var logsReconcileCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the merged, node-balanced query log",
	Long: `Merge the query logs of all nodes into one bounded, newest-first view.

Examples:
  # Latest 100 queries across the cluster
  reconcile logs --limit 100

  # Blocked queries of the last hour, duplicates collapsed
  reconcile logs --status blocked --since 1h --dedupe`,
	RunE: runLogsReconcile,
}

var driftReconcileCmd = &cobra.Command{
	Use:   "drift",
	Short: "Compare the blocking groups of two nodes",
	Long: `Compare the blocking groups of two nodes and report every group whose
list fields differ. Use --archive to store the report in object storage.

Examples:
  reconcile drift --a ns1 --b ns2 --hints
  reconcile drift --a ns1 --b ns2 --archive`,
	RunE: runDriftReconcile,
}

var syncReconcileCmd = &cobra.Command{
	Use:   "sync",
	Short: "Report the sync status of every node against a reference",
	RunE:  runSyncReconcile,
}

func init() {
	reconcileCmd.AddCommand(logsReconcileCmd, driftReconcileCmd, syncReconcileCmd)

	lf := logsReconcileCmd.Flags()
	lf.IntVar(&logsLimit, "limit", 0, "View capacity (defaults to CLUSTER_CAPACITY)")
	lf.BoolVar(&logsDedupe, "dedupe", false, "Collapse duplicate queries")
	lf.BoolVar(&logsNames, "names", true, "Resolve client names from DHCP leases")
	lf.StringVar(&logsFilter.Domain, "domain", "", "Domain substring")
	lf.StringVar(&logsFilter.Client, "client", "", "Client name or address substring")
	lf.StringVar(&logsFilter.Status, "status", "", "all, blocked or allowed")
	lf.StringVar(&logsFilter.Node, "node", "", "Restrict to one node")
	lf.DurationVar(&logsSince, "since", 0, "Only queries newer than this duration")

	df := driftReconcileCmd.Flags()
	df.StringVar(&driftA, "a", "", "First node id")
	df.StringVar(&driftB, "b", "", "Second node id")
	df.BoolVar(&driftHints, "hints", false, "Include near-match hints")
	df.BoolVar(&driftSave, "archive", false, "Archive the report in object storage")
	_ = driftReconcileCmd.MarkFlagRequired("a")
	_ = driftReconcileCmd.MarkFlagRequired("b")

	syncReconcileCmd.Flags().StringVar(&syncRefNode, "reference", "", "Reference node id (defaults to the first node)")

	RootCmd.AddCommand(reconcileCmd)
}

// setup loads configuration and wires services for a one-shot command.
func setup(ctx context.Context) (*services, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := buildServices(ctx, cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return svc, l, nil
}

func runLogsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	req := cluster.LogsRequest{Limit: logsLimit, Dedupe: logsDedupe, ResolveNames: logsNames, Filter: logsFilter}
	if logsSince > 0 {
		req.Start = time.Now().Add(-logsSince)
	}

	res, err := svc.cluster.Logs(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to reconcile logs: %w", err)
	}

	printNodeStatuses(l, res.Nodes)
	for _, e := range res.Entries {
		l.Info("Query",
			zap.Time("time", e.Timestamp),
			zap.String("node", e.NodeID),
			zap.String("client", e.ClientName),
			zap.String("qname", e.QueryName),
			zap.String("response", e.ResponseType),
			zap.Bool("blocked", e.Blocked),
		)
	}
	l.Info("Reconciled log view",
		zap.Int("entries", len(res.Entries)),
		zap.Any("per_node", res.PerNodeCounts),
		zap.Bool("truncated", res.Truncated),
		zap.Int("suppressed", res.Suppressed),
		zap.Strings("failed_nodes", res.FailedNodes),
	)
	return nil
}

func runDriftReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	report, err := svc.cluster.Drift(ctx, driftA, driftB, driftHints)
	if err != nil {
		return fmt.Errorf("failed to compare configurations: %w", err)
	}

	printNodeStatuses(l, report.Nodes)
	printDriftReport(l, report.Drift)

	if driftSave {
		key, err := svc.cluster.ArchiveDrift(ctx, report)
		if err != nil {
			return fmt.Errorf("failed to archive report: %w", err)
		}
		l.Info("Report archived", zap.String("key", key))
	}
	return nil
}

func runSyncReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := setup(ctx)
	if err != nil {
		return err
	}
	defer l.Sync()

	report, err := svc.cluster.SyncStatus(ctx, syncRefNode)
	if err != nil {
		return fmt.Errorf("failed to compute sync status: %w", err)
	}

	for _, n := range report.Nodes {
		fields := []zap.Field{
			zap.String("node", n.NodeID),
			zap.Bool("in_sync", n.InSync),
			zap.Int("drift", n.DriftCount),
			zap.Strings("groups", n.Groups),
		}
		if n.Error != "" {
			l.Warn("Node unavailable", append(fields, zap.String("error", n.Error))...)
			continue
		}
		l.Info("Node sync status", fields...)
	}
	l.Info("Cluster sync status", zap.String("reference", report.Reference), zap.Bool("in_sync", report.InSync))
	return nil
}

func printNodeStatuses(l *zap.Logger, statuses []cluster.NodeStatus) {
	for _, st := range statuses {
		if st.OK {
			l.Debug("Node fetched", zap.String("node", st.NodeID), zap.Int("entries", st.Entries), zap.Int64("ms", st.DurationMs))
			continue
		}
		l.Warn("Node failed", zap.String("node", st.NodeID), zap.String("error", st.Error))
	}
}

// printDriftReport prints a drift result using logger, at most 5 values per side.
func printDriftReport(l *zap.Logger, drift *reconcile.DriftResult) {
	l.Info("Drift report", zap.Int("drifted_groups", drift.Count))

	const maxShow = 5
	for _, g := range drift.Groups {
		if g.Missing != reconcile.SideNone {
			l.Info("Group missing", zap.String("group", g.Name), zap.String("missing_on", string(g.Missing)))
			continue
		}
		for _, f := range g.Fields {
			l.Info("Field differs",
				zap.String("group", g.Name),
				zap.String("field", string(f.Field)),
				zap.Strings("only_a", f.OnlyA[:min(len(f.OnlyA), maxShow)]),
				zap.Strings("only_b", f.OnlyB[:min(len(f.OnlyB), maxShow)]),
			)
			for _, m := range f.NearMatches {
				l.Info("Near match", zap.String("a", m.A), zap.String("b", m.B), zap.Float64("similarity", m.Similarity))
			}
		}
	}
}
