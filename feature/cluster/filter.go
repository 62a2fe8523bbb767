package cluster

import (
	"fmt"
	"strings"

	"dns-fleet/core/reconcile"
)

// Status filter values.
const (
	StatusAll     = "all"
	StatusBlocked = "blocked"
	StatusAllowed = "allowed"
)

// ViewFilter narrows a reconciled log view. Empty fields match everything.
type ViewFilter struct {
	// Domain matches a case-insensitive substring of the query name.
	Domain string
	// Client matches a case-insensitive substring of the client name or address.
	Client string
	// Status is one of all, blocked, allowed.
	Status string
	// Node restricts the view to a single node.
	Node string
}

// Validate rejects unknown status values.
func (f ViewFilter) Validate() error {
	switch f.Status {
	case "", StatusAll, StatusBlocked, StatusAllowed:
		return nil
	default:
		return fmt.Errorf("%w: status must be all, blocked or allowed, got %q", ErrInvalidFilter, f.Status)
	}
}

// Match reports whether an entry passes the filter.
func (f ViewFilter) Match(e reconcile.LogEntry) bool {
	if f.Node != "" && e.NodeID != f.Node {
		return false
	}
	switch f.Status {
	case StatusBlocked:
		if !e.Blocked {
			return false
		}
	case StatusAllowed:
		if e.Blocked {
			return false
		}
	}
	if f.Domain != "" && !containsFold(e.QueryName, f.Domain) {
		return false
	}
	if f.Client != "" && !containsFold(e.ClientName, f.Client) && !containsFold(e.ClientAddress, f.Client) {
		return false
	}
	return true
}

// Apply filters a view in place, keeping its order. PerNodeCounts is
// recomputed for the remaining entries; every node keeps its key.
func (f ViewFilter) Apply(view *reconcile.ReconciledView) {
	if f.isZero() {
		return
	}

	kept := view.Entries[:0]
	for _, e := range view.Entries {
		if f.Match(e) {
			kept = append(kept, e)
		}
	}
	view.Entries = kept

	for id := range view.PerNodeCounts {
		view.PerNodeCounts[id] = 0
	}
	for _, e := range kept {
		view.PerNodeCounts[e.NodeID]++
	}
}

func (f ViewFilter) isZero() bool {
	return f.Domain == "" && f.Client == "" && f.Node == "" && (f.Status == "" || f.Status == StatusAll)
}

func (f ViewFilter) key() string {
	return strings.Join([]string{f.Domain, f.Client, f.Status, f.Node}, "\x1f")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
