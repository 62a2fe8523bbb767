package cluster

import (
	"context"
	"sync"

	"dns-fleet/core/node"
	"dns-fleet/core/reconcile"

	"go.uber.org/zap"
)

// Registry lists the nodes of the cluster.
type Registry interface {
	List(ctx context.Context) ([]node.Node, error)
}

// Source is the per-node API the facade fans out to.
type Source interface {
	node.LeaseSource
	FetchLogs(ctx context.Context, limit int, filter node.LogFilter) ([]reconcile.LogEntry, error)
	FetchBlockingGroups(ctx context.Context) ([]reconcile.BlockingGroup, error)
}

// SourceFactory returns the Source for a node.
type SourceFactory func(n node.Node) (Source, error)

// ClientPool keeps one node.Client per node so connections are reused.
// A client is rebuilt when its node's URL or token changes.
type ClientPool struct {
	opts   node.Options
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]*node.Client
}

// NewClientPool creates an empty pool.
func NewClientPool(opts node.Options, logger *zap.Logger) *ClientPool {
	return &ClientPool{opts: opts, logger: logger, clients: make(map[string]*node.Client)}
}

// Source implements SourceFactory.
func (p *ClientPool) Source(n node.Node) (Source, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[n.ID]; ok && c.Node() == n {
		return c, nil
	}

	c, err := node.NewClient(n, p.opts, p.logger)
	if err != nil {
		return nil, err
	}
	p.clients[n.ID] = c
	return c, nil
}
