// Package metrics exposes prometheus collectors for HTTP traffic and membership funnel snapshots.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "together_culture"

// Metrics owns its own registry so tests can build as many as they like
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	funnel   *prometheus.GaugeVec
	snapshot prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		funnel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "funnel_members",
			Help:      "Latest membership funnel snapshot by stage.",
		}, []string{"stage"}),
		snapshot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "funnel_snapshot_timestamp_seconds",
			Help:      "Unix time of the latest funnel snapshot.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.funnel,
		m.snapshot,
	)
	return m
}

// Middleware records one observation per request, labelled by the matched route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// FunnelSnapshot is the stage -> count view published by the snapshot job
type FunnelSnapshot struct {
	Visitors   int64
	Registered int64
	Active     int64
	Interested int64
	TakenAt    time.Time
}

func (m *Metrics) PublishFunnel(s FunnelSnapshot) {
	m.funnel.WithLabelValues("visitors").Set(float64(s.Visitors))
	m.funnel.WithLabelValues("registered").Set(float64(s.Registered))
	m.funnel.WithLabelValues("active").Set(float64(s.Active))
	m.funnel.WithLabelValues("interested").Set(float64(s.Interested))
	m.snapshot.Set(float64(s.TakenAt.Unix()))
}

// Registry is exposed for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
