// Package reconcile provides the cross-node reconciliation engine for a fleet of
// independently running DNS servers.
//
// Nodes never coordinate with each other, so the same query can be logged by
// several of them, one node can be far busier than the rest, and configuration
// groups that should be identical can drift apart. This package turns per-node
// snapshots into a single view an operator can trust.
//
// # Components
//
//  1. Log Reconciler: merges per-node query-log batches into one bounded,
//     newest-first buffer. A soft fairness ceiling keeps a noisy node from
//     crowding the others out of the window, and optional deduplication
//     coalesces identical queries seen within a short window without ever
//     erasing a node from the view.
//
//  2. Drift Detector: compares two snapshots of blocking groups by name and
//     reports which of the nine list fields differ. Boolean flags are carried
//     but never counted.
//
//  3. List Differ: strict, order-independent list equality plus a sorted
//     multiset difference used to explain drift.
//
//  4. Fuzzy Matcher: normalized edit-distance similarity used for near-match
//     hints only. It never influences the drift count.
//
// All functions are pure. They perform no I/O, hold no shared state and
// complete in time proportional to their input, so callers may run them
// concurrently on independent snapshots without locking.
//
// # Usage Example
//
//	view, err := reconcile.Reconcile(batches, 500, true)
//	if err != nil {
//	    return err // programmer error: malformed input
//	}
//
//	drift, err := reconcile.CompareConfigs(groupsA, groupsB)
//	fmt.Println(drift.Count)
package reconcile
