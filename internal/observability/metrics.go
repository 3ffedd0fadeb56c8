package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the route listing metrics. A nil *Metrics records nothing.
type Metrics struct {
	RoutesListedTotal   *prometheus.CounterVec
	SchemaOutcomesTotal *prometheus.CounterVec
	ListingSeconds      prometheus.Histogram
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	registry            *prometheus.Registry
}

// NewMetrics creates and registers all metrics on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RoutesListedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routescope_routes_listed_total",
				Help: "Total number of route descriptors produced",
			},
			[]string{"method"},
		),
		SchemaOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routescope_schema_outcomes_total",
				Help: "Request body inference outcomes",
			},
			[]string{"outcome"},
		),
		ListingSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "routescope_listing_duration_seconds",
				Help:    "Duration of a full route listing pass",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routescope_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "routescope_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.RoutesListedTotal,
		m.SchemaOutcomesTotal,
		m.ListingSeconds,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

func (m *Metrics) RouteListed(method string) {
	if m == nil {
		return
	}
	m.RoutesListedTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) SchemaOutcome(outcome string) {
	if m == nil {
		return
	}
	m.SchemaOutcomesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ListingDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ListingSeconds.Observe(d.Seconds())
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
