package reconcile

import (
	"errors"
	"time"
)

// ErrMalformedInput is returned when a caller passes input that violates the
// engine's shape expectations (non-positive capacity, unnamed nodes or groups).
// It indicates a caller bug and is never produced by node-side failures.
var ErrMalformedInput = errors.New("malformed reconcile input")

// LogEntry is a single DNS query as reported by one node.
type LogEntry struct {
	// Timestamp is when the node answered the query.
	Timestamp time.Time `json:"timestamp"`

	// QueryName is the queried domain.
	QueryName string `json:"query_name"`

	// ClientAddress is the IP address of the client that sent the query.
	ClientAddress string `json:"client_address"`

	// ClientName is the resolved client name. It defaults to ClientAddress
	// when no DHCP lease is known.
	ClientName string `json:"client_name,omitempty"`

	// ResponseType is the node's classification of the answer
	// (e.g. "Recursive", "Cached", "Blocked").
	ResponseType string `json:"response_type,omitempty"`

	// Blocked reports whether the node blocked the query.
	Blocked bool `json:"blocked"`

	// NodeID identifies the node that logged the entry.
	NodeID string `json:"node_id"`
}

// NodeBatch is the result of one fetch cycle against one node.
type NodeBatch struct {
	// NodeID identifies the node.
	NodeID string

	// Entries are ordered newest first.
	Entries []LogEntry

	// Err is set when the fetch failed. A failed batch contributes no entries.
	Err error
}

// ReconciledView is the merged, bounded log view.
type ReconciledView struct {
	// Entries are ordered newest first. len(Entries) never exceeds the capacity.
	Entries []LogEntry `json:"entries"`

	// PerNodeCounts holds the number of visible entries per node.
	// Every node that was passed in has a key, failed nodes report zero.
	PerNodeCounts map[string]int `json:"per_node_counts"`

	// Truncated is set when more entries were available than fit the capacity.
	Truncated bool `json:"truncated"`

	// FailedNodes lists, sorted, the nodes whose batch carried an error.
	FailedNodes []string `json:"failed_nodes"`

	// Suppressed is the number of entries removed as duplicates.
	Suppressed int `json:"suppressed"`
}

// LogOptions tunes the log reconciler.
type LogOptions struct {
	// Capacity is the maximum number of entries in the view. Must be positive.
	Capacity int

	// Dedupe enables duplicate suppression.
	Dedupe bool

	// FairnessCeiling is the soft upper bound on the share of the buffer a
	// single node may hold while other nodes still have entries to show.
	// Zero selects DefaultFairnessCeiling.
	FairnessCeiling float64

	// CoalesceWindow is the maximum distance between two identical queries
	// for them to be treated as duplicates. Zero selects DefaultCoalesceWindow.
	CoalesceWindow time.Duration
}

const (
	// DefaultFairnessCeiling is the default share of the buffer one node may hold.
	DefaultFairnessCeiling = 0.8

	// DefaultCoalesceWindow is the default duplicate coalescing window.
	DefaultCoalesceWindow = time.Second
)

// Field names one of the nine list fields of a BlockingGroup.
type Field string

const (
	FieldAllowed            Field = "allowed"
	FieldBlocked            Field = "blocked"
	FieldAllowListUrls      Field = "allowListUrls"
	FieldBlockListUrls      Field = "blockListUrls"
	FieldAllowedRegex       Field = "allowedRegex"
	FieldBlockedRegex       Field = "blockedRegex"
	FieldRegexAllowListUrls Field = "regexAllowListUrls"
	FieldRegexBlockListUrls Field = "regexBlockListUrls"
	FieldAdblockListUrls    Field = "adblockListUrls"
)

// ListFields is the fixed comparison order of the drift detector.
var ListFields = []Field{
	FieldAllowed,
	FieldBlocked,
	FieldAllowListUrls,
	FieldBlockListUrls,
	FieldAllowedRegex,
	FieldBlockedRegex,
	FieldRegexAllowListUrls,
	FieldRegexBlockListUrls,
	FieldAdblockListUrls,
}

// BlockingGroup is one named blocking configuration group on one node.
type BlockingGroup struct {
	Name string `json:"name"`

	EnableBlocking         bool     `json:"enableBlocking"`
	AllowTxtBlockingReport bool     `json:"allowTxtBlockingReport"`
	BlockAsNxDomain        bool     `json:"blockAsNxDomain"`
	BlockingAddresses      []string `json:"blockingAddresses"`

	Allowed            []string `json:"allowed"`
	Blocked            []string `json:"blocked"`
	AllowListUrls      []string `json:"allowListUrls"`
	BlockListUrls      []string `json:"blockListUrls"`
	AllowedRegex       []string `json:"allowedRegex"`
	BlockedRegex       []string `json:"blockedRegex"`
	RegexAllowListUrls []string `json:"regexAllowListUrls"`
	RegexBlockListUrls []string `json:"regexBlockListUrls"`
	AdblockListUrls    []string `json:"adblockListUrls"`
}

// List returns the values of the given list field.
func (g *BlockingGroup) List(f Field) []string {
	switch f {
	case FieldAllowed:
		return g.Allowed
	case FieldBlocked:
		return g.Blocked
	case FieldAllowListUrls:
		return g.AllowListUrls
	case FieldBlockListUrls:
		return g.BlockListUrls
	case FieldAllowedRegex:
		return g.AllowedRegex
	case FieldBlockedRegex:
		return g.BlockedRegex
	case FieldRegexAllowListUrls:
		return g.RegexAllowListUrls
	case FieldRegexBlockListUrls:
		return g.RegexBlockListUrls
	case FieldAdblockListUrls:
		return g.AdblockListUrls
	default:
		return nil
	}
}

// Side identifies one of the two snapshots being compared.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "a"
	SideB    Side = "b"
)

// NearMatch pairs two values that differ but look almost identical.
type NearMatch struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// FieldDrift describes one differing list field.
type FieldDrift struct {
	Field Field `json:"field"`

	// OnlyA holds values present in snapshot A but not in B (multiset difference).
	OnlyA []string `json:"only_a"`

	// OnlyB holds values present in snapshot B but not in A.
	OnlyB []string `json:"only_b"`

	// NearMatches are hints only and never affect the drift count.
	NearMatches []NearMatch `json:"near_matches,omitempty"`
}

// GroupDrift describes one differing group.
type GroupDrift struct {
	Name string `json:"name"`

	// Missing is the side on which the group does not exist, or SideNone.
	Missing Side `json:"missing,omitempty"`

	// Fields lists the differing list fields. Empty when Missing is set.
	Fields []FieldDrift `json:"fields,omitempty"`
}

// FieldNames returns the names of the differing fields.
func (d GroupDrift) FieldNames() []Field {
	names := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Field)
	}
	return names
}

// DriftResult is the outcome of comparing two blocking-group snapshots.
type DriftResult struct {
	// Count is the number of groups that differ.
	Count int `json:"count"`

	// Groups holds one entry per differing group, sorted by name.
	Groups []GroupDrift `json:"groups"`
}

// DriftOptions tunes the drift detector.
type DriftOptions struct {
	// HintThreshold enables near-match hints when positive. Pairs of differing
	// values with Similarity >= HintThreshold are reported.
	HintThreshold float64
}
