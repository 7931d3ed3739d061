// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the admission guard.
package metrics

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	admissionDecisions  *prometheus.CounterVec
}

func New(service string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "events7",
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "events7",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: prometheus.Labels{"service": service},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		admissionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "events7",
			Name:        "admission_decisions_total",
			Help:        "Create-event admission guard verdicts",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"verdict"}),
	}

	m.registry.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.admissionDecisions)
	return m
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveAdmission(allowed bool) {
	verdict := "deny"
	if allowed {
		verdict = "allow"
	}
	m.admissionDecisions.WithLabelValues(verdict).Inc()
}

// ExposeHTTP serves /metrics on its own port. Blocks; run in a goroutine or
// errgroup.
func (m *Metrics) ExposeHTTP(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	addr := fmt.Sprintf(":%d", port)
	slog.Info("metrics server starting", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
