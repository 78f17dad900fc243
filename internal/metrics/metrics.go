// Package metrics exposes Prometheus collectors for seeding runs and the
// HTTP API.
//
// # Usage
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	pipeline := importers.NewPipeline(store, sink, importers.Options{Observer: m})
//	router.Use(m.GinMiddleware())
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vzwadmin/beheer/internal/importers"
)

const namespace = "beheer"

var latencyBuckets = []float64{
	0.001, 0.002, 0.005,
	0.01, 0.02, 0.05,
	0.1, 0.2, 0.5,
	1, 2, 5, 10,
}

// Metrics implements importers.Observer.
type Metrics struct {
	diagnostics   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registers the collectors with reg. Registering twice on the same
// registry panics, so callers create one Metrics per process (or per test
// registry).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "diagnostics_total",
			Help:      "Diagnostics recorded by seeding stages, by severity and category.",
		}, []string{"stage", "severity", "category"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "stage_duration_seconds",
			Help:      "Duration of seeding stages.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Seeding runs by final status.",
		}, []string{"status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "latency_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets:   latencyBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) Diagnostic(stage string, sev importers.Severity, category string) {
	m.diagnostics.WithLabelValues(stage, string(sev), category).Inc()
}

func (m *Metrics) StageFinished(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RunFinished counts a finished run under its final status.
func (m *Metrics) RunFinished(status string) {
	m.runs.WithLabelValues(status).Inc()
}

// GinMiddleware records request counts and latency. The route label is
// the registered path template so ids do not explode cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

var _ importers.Observer = (*Metrics)(nil)
