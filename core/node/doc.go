// Package node is the typed adapter between the reconciliation engine and a
// single DNS node's web API.
//
// Every node answers with the same envelope:
//
//	{"status": "ok", "response": {...}}
//	{"status": "error", "errorMessage": "..."}
//	{"status": "invalid-token", "errorMessage": "..."}
//
// Responses are parsed with pooled fastjson parsers and validated here, so the
// reconcile package only ever sees well-formed LogEntry and BlockingGroup
// values. Gzip-encoded bodies are decoded with klauspost/compress.
//
// # Operations
//
//   - FetchLogs: GET /api/logs/query (query log app), newest first.
//   - FetchBlockingGroups: GET /api/apps/config/get (blocking app config).
//   - FetchLeases: GET /api/dhcp/leases/list.
//
// Node-side failures (network, HTTP status, rejected token, malformed body)
// are returned as *FetchError and never abort the caller.
//
// # Client Names
//
// LeaseResolver maps client addresses to DHCP host names. It caches each
// node's lease table for its own lifetime, so create one per request.
package node
