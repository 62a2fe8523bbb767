package nodes

import (
	"context"
	"errors"
	"sort"
	"sync"

	"dns-fleet/core/node"
)

// ErrNotFound is returned when no node has the requested id.
var ErrNotFound = errors.New("node not found")

// Store persists the node registry.
type Store interface {
	// List returns all nodes ordered by id.
	List(ctx context.Context) ([]node.Node, error)
	// Get returns the node with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (node.Node, error)
	// Upsert inserts or replaces a node.
	Upsert(ctx context.Context, n node.Node) error
	// Delete removes a node or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[string]node.Node
}

// NewMemoryStore creates a store seeded with the given nodes.
func NewMemoryStore(seed []node.Node) *MemoryStore {
	s := &MemoryStore{nodes: make(map[string]node.Node, len(seed))}
	for _, n := range seed {
		s.nodes[n.ID] = n
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]node.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return node.Node{}, ErrNotFound
	}
	return n, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, n node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.ID] = n
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return ErrNotFound
	}
	delete(s.nodes, id)
	return nil
}
