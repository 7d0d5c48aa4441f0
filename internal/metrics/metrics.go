// AngelaMos | 2026
// metrics.go

// Package metrics exposes Prometheus counters for the storefront flows and
// the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services and middleware report to.
type Recorder interface {
	RecordAuth(operation, outcome string)
	RecordDashboardLoad(outcome string)
	RecordProfileSave(outcome string)
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

type Collector struct {
	auth          *prometheus.CounterVec
	dashboardLoad *prometheus.CounterVec
	profileSave   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_auth_total",
			Help: "Auth operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		dashboardLoad: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_dashboard_load_total",
			Help: "Dashboard loads by resulting state.",
		}, []string{"outcome"}),
		profileSave: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_profile_save_total",
			Help: "Profile saves by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.auth,
		c.dashboardLoad,
		c.profileSave,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordAuth(operation, outcome string) {
	c.auth.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) RecordDashboardLoad(outcome string) {
	c.dashboardLoad.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordProfileSave(outcome string) {
	c.profileSave.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(
	method, route string,
	status int,
	duration time.Duration,
) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Nop discards everything. It stands in when metrics are disabled.
type Nop struct{}

func (Nop) RecordAuth(string, string)                            {}
func (Nop) RecordDashboardLoad(string)                           {}
func (Nop) RecordProfileSave(string)                             {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Middleware records every request under its chi route pattern so path
// parameters do not explode label cardinality.
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			rec.RecordHTTPRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
