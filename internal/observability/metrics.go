package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. It owns its registry so that
// several instances (tests, CLI) never collide on the global one.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	reportDuration     *prometheus.HistogramVec
	reportErrors       *prometheus.CounterVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	efficiencyFallback prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kpi_report_duration_seconds",
			Help:    "Histogram of KPI report computation durations by report.",
			Buckets: prometheus.DefBuckets,
		}, []string{"report"}),
		reportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpi_report_errors_total",
			Help: "Total KPI report failures by report.",
		}, []string{"report"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_cache_hits_total",
			Help: "Total report cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_cache_misses_total",
			Help: "Total report cache misses observed.",
		}),
		efficiencyFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_efficiency_fallback_total",
			Help: "Total efficiency reports answered with the dimension filters dropped.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.reportDuration,
		m.reportErrors,
		m.cacheHits,
		m.cacheMisses,
		m.efficiencyFallback,
	)

	return m
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveReport(report string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(report).Observe(duration.Seconds())
	if err != nil {
		m.reportErrors.WithLabelValues(report).Inc()
	}
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) EfficiencyFallback() {
	if m == nil {
		return
	}
	m.efficiencyFallback.Inc()
}
