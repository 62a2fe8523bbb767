package reconcile

import (
	"fmt"
	"math"
	"sort"
)

// Reconcile merges per-node log batches into one bounded, newest-first view.
// See ReconcileWithOptions for the merge rules.
func Reconcile(batches []NodeBatch, capacity int, dedupe bool) (*ReconciledView, error) {
	return ReconcileWithOptions(batches, LogOptions{Capacity: capacity, Dedupe: dedupe})
}

// ReconcileWithOptions merges per-node log batches into one bounded view.
//
// Failed batches contribute nothing and are reported in FailedNodes. When
// deduplication is enabled, identical queries seen within the coalescing
// window collapse onto their newest occurrence. The remaining entries are
// selected in global timestamp order, then rebalanced so that every node with
// data keeps at least one slot and no node holds more than the fairness
// ceiling while others still have entries to show.
//
// Identical inputs always produce identical output.
func ReconcileWithOptions(batches []NodeBatch, opts LogOptions) (*ReconciledView, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	view := &ReconciledView{
		Entries:       []LogEntry{},
		PerNodeCounts: make(map[string]int, len(batches)),
		FailedNodes:   []string{},
	}

	sources := make([]*nodeSource, 0, len(batches))
	for i, batch := range batches {
		if batch.NodeID == "" {
			return nil, fmt.Errorf("%w: batch %d has no node id", ErrMalformedInput, i)
		}
		if _, dup := view.PerNodeCounts[batch.NodeID]; dup {
			return nil, fmt.Errorf("%w: node %q appears in more than one batch", ErrMalformedInput, batch.NodeID)
		}
		view.PerNodeCounts[batch.NodeID] = 0

		if batch.Err != nil {
			view.FailedNodes = append(view.FailedNodes, batch.NodeID)
			continue
		}
		if len(batch.Entries) == 0 {
			continue
		}
		sources = append(sources, newNodeSource(batch))
	}
	sort.Strings(view.FailedNodes)

	if len(sources) == 0 {
		return view, nil
	}

	if opts.Dedupe {
		view.Suppressed = suppressDuplicates(sources, opts)
	}

	total := 0
	for _, src := range sources {
		total += len(src.entries)
	}
	view.Truncated = total > opts.Capacity

	view.Entries = selectBalanced(sources, total, opts)
	for _, src := range sources {
		view.PerNodeCounts[src.id] = src.quota
	}

	return view, nil
}

func (o LogOptions) normalize() (LogOptions, error) {
	if o.Capacity <= 0 {
		return o, fmt.Errorf("%w: capacity must be positive, got %d", ErrMalformedInput, o.Capacity)
	}
	if o.FairnessCeiling == 0 {
		o.FairnessCeiling = DefaultFairnessCeiling
	}
	if o.FairnessCeiling < 0 || o.FairnessCeiling > 1 {
		return o, fmt.Errorf("%w: fairness ceiling must be in (0, 1], got %v", ErrMalformedInput, o.FairnessCeiling)
	}
	if o.CoalesceWindow == 0 {
		o.CoalesceWindow = DefaultCoalesceWindow
	}
	if o.CoalesceWindow < 0 {
		return o, fmt.Errorf("%w: coalesce window must not be negative, got %v", ErrMalformedInput, o.CoalesceWindow)
	}
	return o, nil
}

// rankedEntry is a LogEntry with its position in the source batch, used as
// the final tie breaker of the global order.
type rankedEntry struct {
	LogEntry
	seq int
}

// before defines the global order: newest first, then node id, then source position.
func before(a, b *rankedEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	return a.seq < b.seq
}

// nodeSource holds the candidate entries of one node during a reconcile pass.
type nodeSource struct {
	id string

	// entries are the candidates, newest first.
	entries []rankedEntry

	// quota is the number of leading entries selected for the view.
	quota int
}

func newNodeSource(batch NodeBatch) *nodeSource {
	entries := make([]rankedEntry, len(batch.Entries))
	for i, e := range batch.Entries {
		e.NodeID = batch.NodeID
		entries[i] = rankedEntry{LogEntry: e, seq: i}
	}
	// Sources promise newest first; sort anyway so a misbehaving node cannot
	// break the ordering guarantees.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return &nodeSource{id: batch.NodeID, entries: entries}
}

// next returns the first unselected entry, or nil when the node is exhausted.
func (s *nodeSource) next() *rankedEntry {
	if s.quota >= len(s.entries) {
		return nil
	}
	return &s.entries[s.quota]
}

// last returns the oldest selected entry, or nil when nothing is selected.
func (s *nodeSource) last() *rankedEntry {
	if s.quota == 0 {
		return nil
	}
	return &s.entries[s.quota-1]
}

// mergeAll returns pointers to every candidate in global order.
func mergeAll(sources []*nodeSource) []*rankedEntry {
	var all []*rankedEntry
	for _, src := range sources {
		for i := range src.entries {
			all = append(all, &src.entries[i])
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return before(all[i], all[j])
	})
	return all
}

// selectBalanced assigns a quota to each source and returns the selected
// entries in global order.
func selectBalanced(sources []*nodeSource, total int, opts LogOptions) []LogEntry {
	if total <= opts.Capacity {
		for _, src := range sources {
			src.quota = len(src.entries)
		}
	} else {
		byID := make(map[string]*nodeSource, len(sources))
		for _, src := range sources {
			byID[src.id] = src
		}
		for _, e := range mergeAll(sources)[:opts.Capacity] {
			byID[e.NodeID].quota++
		}

		guaranteeFloor(sources)
		applyCeiling(sources, opts)
	}

	var selected []*rankedEntry
	for _, src := range sources {
		for i := 0; i < src.quota; i++ {
			selected = append(selected, &src.entries[i])
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return before(selected[i], selected[j])
	})

	out := make([]LogEntry, len(selected))
	for i, e := range selected {
		out[i] = e.LogEntry
	}
	return out
}

// guaranteeFloor gives every node without a slot one slot, taken from the
// largest holder. Nodes are served in order of their newest entry, so when
// there are more nodes than slots the most recently active nodes win.
func guaranteeFloor(sources []*nodeSource) {
	order := make([]*nodeSource, len(sources))
	copy(order, sources)
	sort.Slice(order, func(i, j int) bool {
		return before(&order[i].entries[0], &order[j].entries[0])
	})

	for _, src := range order {
		if src.quota > 0 {
			continue
		}
		donor := largestHolder(sources, 1)
		if donor == nil {
			return
		}
		donor.quota--
		src.quota++
	}
}

// applyCeiling moves slots away from nodes above the fairness ceiling to the
// node whose next unselected entry is newest. It stops when no node is above
// the ceiling or no other node has entries left, so the ceiling is a soft bias.
func applyCeiling(sources []*nodeSource, opts LogOptions) {
	if len(sources) < 2 {
		return
	}
	limit := max(int(math.Floor(opts.FairnessCeiling*float64(opts.Capacity))), 1)

	for {
		over := largestHolder(sources, limit)
		if over == nil {
			return
		}

		var recv *nodeSource
		for _, src := range sources {
			if src == over || src.quota >= limit || src.next() == nil {
				continue
			}
			if recv == nil || before(src.next(), recv.next()) {
				recv = src
			}
		}
		if recv == nil {
			return
		}

		over.quota--
		recv.quota++
	}
}

// largestHolder returns the node with the most slots above threshold. Ties go
// to the node whose oldest selected entry is oldest, since giving that one up
// costs the view the least recency.
func largestHolder(sources []*nodeSource, threshold int) *nodeSource {
	var best *nodeSource
	for _, src := range sources {
		if src.quota <= threshold {
			continue
		}
		if best == nil || src.quota > best.quota ||
			(src.quota == best.quota && before(best.last(), src.last())) {
			best = src
		}
	}
	return best
}
