// Package metrics exports Prometheus collectors for node requests,
// reconciled views, drift and API latency. All methods tolerate a nil
// *Metrics so services can run without instrumentation in tests.
package metrics
