package cluster

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"dns-fleet/core/node"
	"dns-fleet/core/reconcile"
)

const (
	// RegistryMemory keeps the node registry in process, seeded from Nodes.
	RegistryMemory = "memory"
	// RegistryDatabase persists the node registry through gorm.
	RegistryDatabase = "database"
)

// Config holds configuration for the cluster facade and its node clients.
type Config struct {
	// Nodes seeds the registry, formatted as "id=url|token,id=url|token".
	Nodes string `mapstructure:"nodes" default:""`
	// Registry selects the registry backend (memory, database).
	Registry string `mapstructure:"registry" default:"memory"`
	// FetchTimeoutSeconds bounds every request to a single node.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"10"`
	// MaxConcurrency bounds concurrent node requests per operation.
	MaxConcurrency int `mapstructure:"max_concurrency" default:"16"`
	// Capacity is the default number of entries in a reconciled log view.
	Capacity int `mapstructure:"capacity" default:"500"`
	// FairnessCeiling is the soft share cap of a single node in a log view.
	FairnessCeiling float64 `mapstructure:"fairness_ceiling" default:"0.8"`
	// CoalesceWindowMs is the duplicate window used when deduplicating logs.
	CoalesceWindowMs int `mapstructure:"coalesce_window_ms" default:"1000"`
	// CacheTTLSeconds is how long identical read requests share a result.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"5"`
	// HintThreshold is the minimum similarity for near-match hints.
	HintThreshold float64 `mapstructure:"hint_threshold" default:"0.85"`
	// LogAppName is the name of the query log app installed on every node.
	LogAppName string `mapstructure:"log_app_name" default:"Query Logs (Sqlite)"`
	// LogAppClassPath is the class path of the query log app.
	LogAppClassPath string `mapstructure:"log_app_class_path" default:"QueryLogsSqlite.App"`
	// BlockingAppName is the name of the blocking app holding group config.
	BlockingAppName string `mapstructure:"blocking_app_name" default:"Advanced Blocking"`
	// ArchivePrefix is the object key prefix for archived drift reports.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"reports/drift"`
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Registry != RegistryMemory && c.Registry != RegistryDatabase {
		return fmt.Errorf("unknown registry backend %q", c.Registry)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	if c.FairnessCeiling < 0 || c.FairnessCeiling > 1 {
		return fmt.Errorf("fairness ceiling must be within [0, 1], got %v", c.FairnessCeiling)
	}
	if c.HintThreshold < 0 || c.HintThreshold > 1 {
		return fmt.Errorf("hint threshold must be within [0, 1], got %v", c.HintThreshold)
	}
	return nil
}

// NodeOptions returns the client options shared by every node.
func (c Config) NodeOptions() node.Options {
	return node.Options{
		Timeout:         c.FetchTimeout(),
		LogAppName:      c.LogAppName,
		LogAppClassPath: c.LogAppClassPath,
		BlockingAppName: c.BlockingAppName,
	}
}

// FetchTimeout returns the per-node timeout, defaulting to 10 seconds.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns the memo lifetime. Zero disables the cache.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LogOptions builds engine options for a view of the given capacity.
// A non-positive capacity falls back to the configured default.
func (c Config) LogOptions(capacity int, dedupe bool) reconcile.LogOptions {
	if capacity <= 0 {
		capacity = c.Capacity
	}
	if capacity <= 0 {
		capacity = 500
	}
	return reconcile.LogOptions{
		Capacity:        capacity,
		Dedupe:          dedupe,
		FairnessCeiling: c.FairnessCeiling,
		CoalesceWindow:  time.Duration(c.CoalesceWindowMs) * time.Millisecond,
	}
}

// DriftOptions builds engine options for configuration comparison.
func (c Config) DriftOptions(hints bool) reconcile.DriftOptions {
	if !hints {
		return reconcile.DriftOptions{}
	}
	return reconcile.DriftOptions{HintThreshold: c.HintThreshold}
}

// ParseNodes parses a registry seed of the form "id=url|token,id=url|token".
// The token part is optional. Whitespace around items is ignored.
func ParseNodes(spec string) ([]node.Node, error) {
	var nodes []node.Node
	seen := make(map[string]struct{})

	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		id, rest, ok := strings.Cut(item, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("node %q: expected id=url", item)
		}

		rawURL, token, _ := strings.Cut(rest, "|")
		rawURL = strings.TrimSpace(rawURL)
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("node %q: invalid url %q", id, rawURL)
		}

		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("node %q: duplicate id", id)
		}
		seen[id] = struct{}{}

		nodes = append(nodes, node.Node{
			ID:    id,
			Name:  id,
			URL:   strings.TrimRight(rawURL, "/"),
			Token: strings.TrimSpace(token),
		})
	}
	return nodes, nil
}
