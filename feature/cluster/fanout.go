package cluster

import (
	"context"
	"time"

	"dns-fleet/core/node"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type fetched[T any] struct {
	value  T
	err    error
	status NodeStatus
}

// fanOut runs fetch against every node concurrently and waits for all of
// them. Each call gets its own timeout. A plain errgroup.Group is used so a
// failing node never cancels its siblings; failures land in the results.
func fanOut[T any](ctx context.Context, s *Service, nodes []node.Node, op string,
	fetch func(ctx context.Context, src Source) (T, error), size func(T) int) []fetched[T] {

	results := make([]fetched[T], len(nodes))

	var g errgroup.Group
	limit := s.cfg.MaxConcurrency
	if limit <= 0 {
		limit = len(nodes)
	}
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			start := time.Now()
			fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout())
			defer cancel()

			var value T
			src, err := s.sources(n)
			if err == nil {
				value, err = fetch(fctx, src)
			}
			took := time.Since(start)
			s.metrics.ObserveFetch(n.ID, op, took, err)

			st := NodeStatus{NodeID: n.ID, Name: n.DisplayName(), OK: err == nil, DurationMs: took.Milliseconds()}
			if err != nil {
				st.Error = err.Error()
				s.logger.Warn("Node fetch failed",
					zap.String("node", n.ID), zap.String("op", op), zap.Duration("took", took), zap.Error(err))
			} else {
				st.Entries = size(value)
			}
			results[i] = fetched[T]{value: value, err: err, status: st}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func statuses[T any](results []fetched[T]) []NodeStatus {
	out := make([]NodeStatus, len(results))
	for i, r := range results {
		out[i] = r.status
	}
	return out
}
