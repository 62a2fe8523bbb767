package cluster

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	clustercfg "dns-fleet/core/cluster"
	"dns-fleet/core/metrics"
	"dns-fleet/core/node"
	"dns-fleet/core/reconcile"
	"dns-fleet/core/storage"

	"go.uber.org/zap"
)

// Service orchestrates node fan-out and the reconciliation engine.
type Service struct {
	registry Registry
	sources  SourceFactory
	cfg      clustercfg.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	memo     *memo
	archive  *Archive
	now      func() time.Time
}

// NewService creates the facade. metrics and archive may be nil.
func NewService(registry Registry, sources SourceFactory, cfg clustercfg.Config, logger *zap.Logger, m *metrics.Metrics, archive *Archive) *Service {
	return &Service{
		registry: registry,
		sources:  sources,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		memo:     newMemo(cfg.CacheTTL()),
		archive:  archive,
		now:      time.Now,
	}
}

// Invalidate drops memoized results, e.g. after the registry changed.
func (s *Service) Invalidate() {
	s.memo.invalidate()
}

// Logs returns the reconciled query log of the cluster.
func (s *Service) Logs(ctx context.Context, req LogsRequest) (*LogsResult, error) {
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	if !req.Start.IsZero() && !req.End.IsZero() && req.End.Before(req.Start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidFilter, req.End.Format(time.RFC3339), req.Start.Format(time.RFC3339))
	}
	opts := s.cfg.LogOptions(req.Limit, req.Dedupe)

	key := strings.Join([]string{
		"logs", strconv.Itoa(opts.Capacity), strconv.FormatBool(req.Dedupe), strconv.FormatBool(req.ResolveNames),
		timeKey(req.Start), timeKey(req.End), req.Filter.key(),
	}, "|")

	return cached(s.memo, key, func() (*LogsResult, error) {
		return s.buildLogs(context.WithoutCancel(ctx), req, opts)
	})
}

func (s *Service) buildLogs(ctx context.Context, req LogsRequest, opts reconcile.LogOptions) (*LogsResult, error) {
	nodes, err := s.nodes(ctx)
	if err != nil {
		return nil, err
	}
	// A node filter narrows the fan-out so the node gets the whole buffer.
	if req.Filter.Node != "" {
		n, err := pick(nodes, req.Filter.Node)
		if err != nil {
			return nil, err
		}
		nodes = []node.Node{n}
	}

	filter := node.LogFilter{Start: req.Start, End: req.End}
	results := fanOut(ctx, s, nodes, "logs",
		func(ctx context.Context, src Source) ([]reconcile.LogEntry, error) {
			return src.FetchLogs(ctx, opts.Capacity, filter)
		},
		func(entries []reconcile.LogEntry) int { return len(entries) })

	batches := make([]reconcile.NodeBatch, len(results))
	for i, r := range results {
		batches[i] = reconcile.NodeBatch{NodeID: nodes[i].ID, Entries: r.value, Err: r.err}
	}

	view, err := reconcile.ReconcileWithOptions(batches, opts)
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, nodes, view, req.ResolveNames)
	req.Filter.Apply(view)
	s.metrics.ObserveView("logs", len(view.Entries))

	s.logger.Debug("Reconciled cluster logs",
		zap.Int("nodes", len(nodes)),
		zap.Int("entries", len(view.Entries)),
		zap.Int("suppressed", view.Suppressed),
		zap.Strings("failed", view.FailedNodes))

	return &LogsResult{ReconciledView: view, Nodes: statuses(results), GeneratedAt: s.now()}, nil
}

// enrich fills ClientName from DHCP leases, defaulting to the address.
func (s *Service) enrich(ctx context.Context, nodes []node.Node, view *reconcile.ReconciledView, resolve bool) {
	var resolver *node.LeaseResolver
	if resolve && len(view.Entries) > 0 {
		leaseSources := make(map[string]node.LeaseSource, len(nodes))
		var ids []string
		for _, n := range nodes {
			if view.PerNodeCounts[n.ID] == 0 {
				continue
			}
			src, err := s.sources(n)
			if err != nil {
				continue
			}
			leaseSources[n.ID] = src
			ids = append(ids, n.ID)
		}
		resolver = node.NewLeaseResolver(leaseSources)

		lctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout())
		defer cancel()
		resolver.Prefetch(lctx, ids)
		ctx = lctx
	}

	for i := range view.Entries {
		e := &view.Entries[i]
		if resolver != nil {
			if name, ok := resolver.ResolveClientName(ctx, e.NodeID, e.ClientAddress); ok {
				e.ClientName = name
				continue
			}
		}
		if e.ClientName == "" {
			e.ClientName = e.ClientAddress
		}
	}
}

// Drift compares the blocking groups of nodes a and b.
func (s *Service) Drift(ctx context.Context, a, b string, hints bool) (*DriftReport, error) {
	key := strings.Join([]string{"drift", a, b, strconv.FormatBool(hints)}, "|")
	return cached(s.memo, key, func() (*DriftReport, error) {
		return s.buildDrift(context.WithoutCancel(ctx), a, b, hints)
	})
}

func (s *Service) buildDrift(ctx context.Context, a, b string, hints bool) (*DriftReport, error) {
	all, err := s.nodes(ctx)
	if err != nil {
		return nil, err
	}
	na, err := pick(all, a)
	if err != nil {
		return nil, err
	}
	nb, err := pick(all, b)
	if err != nil {
		return nil, err
	}

	results := s.fetchGroups(ctx, []node.Node{na, nb})
	report := &DriftReport{A: a, B: b, Nodes: statuses(results), GeneratedAt: s.now()}
	for i, r := range results {
		if r.err != nil {
			return report, fmt.Errorf("%w: %s: %v", ErrFetchFailed, results[i].status.NodeID, r.err)
		}
	}

	drift, err := reconcile.CompareConfigsWithOptions(results[0].value, results[1].value, s.cfg.DriftOptions(hints))
	if err != nil {
		return report, err
	}
	report.Drift = drift
	s.metrics.SetDrift(drift.Count)

	s.logger.Debug("Compared node configurations",
		zap.String("a", a), zap.String("b", b), zap.Int("drift", drift.Count))
	return report, nil
}

// SyncStatus compares every node against the reference node. An empty
// reference selects the first node by id.
func (s *Service) SyncStatus(ctx context.Context, reference string) (*SyncReport, error) {
	key := "sync|" + reference
	return cached(s.memo, key, func() (*SyncReport, error) {
		return s.buildSync(context.WithoutCancel(ctx), reference)
	})
}

func (s *Service) buildSync(ctx context.Context, reference string) (*SyncReport, error) {
	nodes, err := s.nodes(ctx)
	if err != nil {
		return nil, err
	}
	report := &SyncReport{Reference: reference, InSync: true, Nodes: []SyncEntry{}, GeneratedAt: s.now()}
	if len(nodes) == 0 {
		return report, nil
	}
	if reference == "" {
		reference = nodes[0].ID
		report.Reference = reference
	}
	ref := -1
	for i, n := range nodes {
		if n.ID == reference {
			ref = i
		}
	}
	if ref < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, reference)
	}

	results := s.fetchGroups(ctx, nodes)
	if err := results[ref].err; err != nil {
		return nil, fmt.Errorf("%w: reference %s: %v", ErrFetchFailed, reference, err)
	}

	for i, n := range nodes {
		if i == ref {
			continue
		}
		entry := SyncEntry{NodeID: n.ID, Name: n.DisplayName()}
		if r := results[i]; r.err != nil {
			entry.Error = r.err.Error()
		} else if drift, err := reconcile.CompareConfigs(results[ref].value, r.value); err != nil {
			entry.Error = err.Error()
		} else {
			entry.DriftCount = drift.Count
			entry.InSync = drift.Count == 0
			for _, g := range drift.Groups {
				entry.Groups = append(entry.Groups, g.Name)
			}
		}
		report.InSync = report.InSync && entry.InSync
		report.Nodes = append(report.Nodes, entry)
	}
	return report, nil
}

// ArchiveDrift stores a drift report and returns its object key.
func (s *Service) ArchiveDrift(ctx context.Context, report *DriftReport) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}
	if report == nil || report.Drift == nil {
		return "", fmt.Errorf("%w: empty drift report", reconcile.ErrMalformedInput)
	}
	key, err := s.archive.Save(ctx, report)
	if err != nil {
		return "", err
	}
	s.logger.Info("Archived drift report", zap.String("key", key), zap.Int("drift", report.Drift.Count))
	return key, nil
}

// Archives lists archived drift reports, newest first.
func (s *Service) Archives(ctx context.Context) ([]storage.Object, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx)
}

// Archived loads one archived drift report.
func (s *Service) Archived(ctx context.Context, key string) (*DriftReport, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.Load(ctx, key)
}

func (s *Service) fetchGroups(ctx context.Context, nodes []node.Node) []fetched[[]reconcile.BlockingGroup] {
	return fanOut(ctx, s, nodes, "groups",
		func(ctx context.Context, src Source) ([]reconcile.BlockingGroup, error) {
			return src.FetchBlockingGroups(ctx)
		},
		func(groups []reconcile.BlockingGroup) int { return len(groups) })
}

func (s *Service) nodes(ctx context.Context) ([]node.Node, error) {
	nodes, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	sorted := make([]node.Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted, nil
}

func pick(nodes []node.Node, id string) (node.Node, error) {
	for _, n := range nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return node.Node{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
}

func timeKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}
