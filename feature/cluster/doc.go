// Package cluster is the reconciliation facade of the DNS fleet.
//
// It fans out to every registered node concurrently, each request bounded by
// its own timeout, waits for all of them, and hands the collected batches to
// the reconcile engine. A node that fails or times out never fails the
// request; it shows up in the per-node diagnostics instead.
//
// # Operations
//
//   - Logs: reconciled query log, enriched with DHCP client names and
//     narrowed by ViewFilter.
//   - Drift: blocking-group drift between two nodes.
//   - SyncStatus: drift of every node against a reference node.
//   - ArchiveDrift: stores a drift report in object storage.
//
// Identical read requests share results for cluster.cache_ttl_seconds.
//
// # HTTP Endpoints
//
//   - GET /cluster/logs
//   - GET /cluster/drift?a=&b=&hints=
//   - POST /cluster/drift/archive?a=&b=
//   - GET /cluster/archives, GET /cluster/archives/{key}
//   - GET /cluster/sync?reference=
//   - GET /cluster/similarity?x=&y=
package cluster
