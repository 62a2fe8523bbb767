package cluster

import (
	"errors"
	"time"

	"dns-fleet/core/reconcile"
)

var (
	// ErrUnknownNode is returned when a request names a node that is not registered.
	ErrUnknownNode = errors.New("unknown node")
	// ErrFetchFailed is returned when an operation cannot proceed without a node that failed.
	ErrFetchFailed = errors.New("node fetch failed")
	// ErrArchiveDisabled is returned when report archiving is not configured.
	ErrArchiveDisabled = errors.New("report archive is disabled")
	// ErrInvalidFilter is returned for an unknown status filter or an inverted time range.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrUnknownArchive is returned for a key outside the report archive.
	ErrUnknownArchive = errors.New("unknown archived report")
)

// NodeStatus is the per-node diagnostic of one fan-out.
type NodeStatus struct {
	NodeID     string `json:"node_id"`
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	Entries    int    `json:"entries"`
	DurationMs int64  `json:"duration_ms"`
}

// LogsRequest selects a reconciled log view.
type LogsRequest struct {
	// Limit is the view capacity. Zero uses the configured default.
	Limit int
	// Dedupe enables duplicate suppression.
	Dedupe bool
	// ResolveNames looks client addresses up in each node's DHCP leases.
	ResolveNames bool
	// Start and End bound the query time range on every node. Zero means open.
	Start time.Time
	End   time.Time
	// Filter narrows the reconciled view.
	Filter ViewFilter
}

// LogsResult is a reconciled view plus fetch diagnostics.
type LogsResult struct {
	*reconcile.ReconciledView
	Nodes       []NodeStatus `json:"nodes"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// DriftReport compares the blocking groups of two nodes.
type DriftReport struct {
	A           string                 `json:"a"`
	B           string                 `json:"b"`
	Drift       *reconcile.DriftResult `json:"drift"`
	Nodes       []NodeStatus           `json:"nodes"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// SyncEntry is the drift of one node against the reference.
type SyncEntry struct {
	NodeID     string   `json:"node_id"`
	Name       string   `json:"name"`
	InSync     bool     `json:"in_sync"`
	DriftCount int      `json:"drift_count"`
	Groups     []string `json:"groups,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// SyncReport is the sync badge data for every node.
type SyncReport struct {
	Reference   string      `json:"reference"`
	InSync      bool        `json:"in_sync"`
	Nodes       []SyncEntry `json:"nodes"`
	GeneratedAt time.Time   `json:"generated_at"`
}
