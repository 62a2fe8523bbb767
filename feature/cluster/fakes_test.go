package cluster

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	clustercfg "dns-fleet/core/cluster"
	"dns-fleet/core/node"
	"dns-fleet/core/reconcile"

	"go.uber.org/zap"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	logs      []reconcile.LogEntry
	logsErr   error
	groups    []reconcile.BlockingGroup
	groupsErr error
	leases    []node.Lease
	delay     time.Duration

	logCalls   atomic.Int32
	groupCalls atomic.Int32
	lastLimit  atomic.Int32
}

func (f *fakeSource) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeSource) FetchLogs(ctx context.Context, limit int, filter node.LogFilter) ([]reconcile.LogEntry, error) {
	f.logCalls.Add(1)
	f.lastLimit.Store(int32(limit))
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.logs, f.logsErr
}

func (f *fakeSource) FetchBlockingGroups(ctx context.Context) ([]reconcile.BlockingGroup, error) {
	f.groupCalls.Add(1)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.groups, f.groupsErr
}

func (f *fakeSource) FetchLeases(ctx context.Context) ([]node.Lease, error) {
	return f.leases, nil
}

type fakeRegistry []node.Node

func (r fakeRegistry) List(ctx context.Context) ([]node.Node, error) {
	return r, nil
}

func testConfig() clustercfg.Config {
	return clustercfg.Config{
		Registry:            clustercfg.RegistryMemory,
		FetchTimeoutSeconds: 1,
		MaxConcurrency:      4,
		Capacity:            100,
		HintThreshold:       0.85,
	}
}

func newTestService(t *testing.T, sources map[string]*fakeSource, cfg clustercfg.Config, archive *Archive) *Service {
	t.Helper()

	var reg fakeRegistry
	for id := range sources {
		reg = append(reg, node.Node{ID: id, Name: "DNS " + id, URL: "http://" + id + ":5380"})
	}
	// Registry order must not matter.
	sort.Slice(reg, func(i, j int) bool { return reg[i].ID > reg[j].ID })

	factory := func(n node.Node) (Source, error) {
		return sources[n.ID], nil
	}
	return NewService(reg, factory, cfg, zap.NewNop(), nil, archive)
}

// entries builds newest-first entries for one node, one second apart.
func entries(nodeID string, n int, qname string) []reconcile.LogEntry {
	out := make([]reconcile.LogEntry, n)
	for i := range out {
		out[i] = reconcile.LogEntry{
			Timestamp:     t0.Add(-time.Duration(i) * time.Second),
			QueryName:     qname,
			ClientAddress: "192.168.1.10",
			ResponseType:  "Recursive",
			NodeID:        nodeID,
		}
	}
	return out
}
