// Package nodes is the registry of DNS nodes that make up the cluster.
//
// Nodes live in a Store: MemoryStore for a static cluster seeded from
// CLUSTER_NODES, or GormStore for a registry persisted in the cluster_nodes
// table. Either way the seed list is applied on startup without overwriting
// nodes that already exist.
//
// # HTTP Endpoints
//
//   - GET /nodes : Lists nodes (tokens are never serialized).
//   - POST /nodes : Registers or replaces a node.
//   - GET /nodes/:id : Returns a node.
//   - DELETE /nodes/:id : Removes a node.
package nodes
