package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch results recorded by ObserveFetch.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	nodeFetches       *prometheus.CounterVec
	nodeFetchDuration *prometheus.HistogramVec
	reconciledEntries *prometheus.HistogramVec
	driftCount        prometheus.Gauge
	httpRequests      *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		nodeFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dnsfleet_node_fetch_total",
			Help: "Requests sent to DNS nodes",
		}, []string{"node", "op", "result"}),
		nodeFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dnsfleet_node_fetch_seconds",
			Help:    "Latency of requests sent to DNS nodes",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"node", "op"}),
		reconciledEntries: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dnsfleet_reconcile_entries",
			Help:    "Entries per reconciled view",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
		}, []string{"view"}),
		driftCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dnsfleet_drift_count",
			Help: "Drift count of the most recent configuration comparison",
		}),
		httpRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dnsfleet_http_request_seconds",
			Help:    "Latency of API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveFetch records one request to a node.
func (m *Metrics) ObserveFetch(nodeID, op string, took time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.nodeFetches.WithLabelValues(nodeID, op, result).Inc()
	m.nodeFetchDuration.WithLabelValues(nodeID, op).Observe(took.Seconds())
}

// ObserveView records the size of a reconciled view ("logs", "sync").
func (m *Metrics) ObserveView(view string, entries int) {
	if m == nil {
		return
	}
	m.reconciledEntries.WithLabelValues(view).Observe(float64(entries))
}

// SetDrift records the latest drift count.
func (m *Metrics) SetDrift(count int) {
	if m == nil {
		return
	}
	m.driftCount.Set(float64(count))
}

// Middleware measures API request latency by matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		m.httpRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
