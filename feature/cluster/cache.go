package cluster

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoEntry struct {
	value any
	built time.Time
}

// memo shares results of identical read requests for a short TTL.
// Concurrent misses on the same key are collapsed with singleflight.
type memo struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoEntry
	sf      singleflight.Group
}

func newMemo(ttl time.Duration) *memo {
	return &memo{ttl: ttl, now: time.Now, entries: make(map[string]memoEntry)}
}

func (m *memo) lookup(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || m.now().Sub(e.built) > m.ttl {
		return nil, false
	}
	return e.value, true
}

func (m *memo) store(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if now.Sub(e.built) > m.ttl {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoEntry{value: value, built: now}
}

// invalidate drops every cached result.
func (m *memo) invalidate() {
	m.mu.Lock()
	m.entries = make(map[string]memoEntry)
	m.mu.Unlock()
}

// cached returns the memoized value for key or builds it. Errors are never
// cached. A zero TTL disables memoization.
func cached[T any](m *memo, key string, build func() (T, error)) (T, error) {
	if m == nil || m.ttl <= 0 {
		return build()
	}

	if v, ok := m.lookup(key); ok {
		return v.(T), nil
	}

	v, err, _ := m.sf.Do(key, func() (any, error) {
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		built, err := build()
		if err != nil {
			return nil, err
		}
		m.store(key, built)
		return built, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
