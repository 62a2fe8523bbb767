package node

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LeaseSource provides a node's DHCP lease table.
type LeaseSource interface {
	FetchLeases(ctx context.Context) ([]Lease, error)
}

// LeaseResolver maps client addresses to host names using each node's DHCP
// leases. Lease tables are fetched at most once per resolver, so a resolver
// should live for one request; this also keeps names consistent within a
// response even if leases change while it is being built.
type LeaseResolver struct {
	sources map[string]LeaseSource

	mu     sync.RWMutex
	tables map[string]map[string]string
	sf     singleflight.Group
}

// NewLeaseResolver creates a resolver over the given sources keyed by node id.
func NewLeaseResolver(sources map[string]LeaseSource) *LeaseResolver {
	return &LeaseResolver{
		sources: sources,
		tables:  make(map[string]map[string]string, len(sources)),
	}
}

// ResolveClientName returns the host name leased to ip by the node, if any.
// A node whose lease table cannot be fetched resolves nothing.
func (r *LeaseResolver) ResolveClientName(ctx context.Context, nodeID, ip string) (string, bool) {
	table := r.table(ctx, nodeID)
	name, ok := table[ip]
	return name, ok && name != ""
}

// Prefetch loads the lease tables of the given nodes concurrently.
func (r *LeaseResolver) Prefetch(ctx context.Context, nodeIDs []string) {
	var wg sync.WaitGroup
	for _, id := range nodeIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r.table(ctx, id)
		}(id)
	}
	wg.Wait()
}

func (r *LeaseResolver) table(ctx context.Context, nodeID string) map[string]string {
	// Fast path: already loaded
	r.mu.RLock()
	table, ok := r.tables[nodeID]
	r.mu.RUnlock()
	if ok {
		return table
	}

	result, _, _ := r.sf.Do(nodeID, func() (interface{}, error) {
		r.mu.RLock()
		table, ok := r.tables[nodeID]
		r.mu.RUnlock()
		if ok {
			return table, nil
		}

		table = map[string]string{}
		if src, known := r.sources[nodeID]; known {
			if leases, err := src.FetchLeases(ctx); err == nil {
				for _, l := range leases {
					if l.Address != "" && l.HostName != "" {
						table[l.Address] = l.HostName
					}
				}
			}
		}

		r.mu.Lock()
		r.tables[nodeID] = table
		r.mu.Unlock()
		return table, nil
	})

	return result.(map[string]string)
}
