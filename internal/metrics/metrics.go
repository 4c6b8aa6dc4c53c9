// Package metrics exposes Prometheus counters for exports and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Export outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeError         = "error"
	OutcomeUnresolved    = "unresolved"
	OutcomeUnknownFormat = "unknown_format"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	exports         *prometheus.CounterVec
	emails          *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpRequestTime *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return newMetrics(reg, reg)
}

func newMetrics(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	exports := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicedesk_exports_total",
			Help: "Invoice exports by format and outcome.",
		},
		[]string{"format", "outcome"},
	)

	emails := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicedesk_emails_total",
			Help: "Invoice e-mail compositions by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicedesk_http_requests_total",
			Help: "HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)

	httpRequestTime := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoicedesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	registerer.MustRegister(exports, emails, httpRequests, httpRequestTime)

	return &Metrics{
		gatherer:        gatherer,
		exports:         exports,
		emails:          emails,
		httpRequests:    httpRequests,
		httpRequestTime: httpRequestTime,
	}
}

// ObserveExport counts one export attempt.
func (m *Metrics) ObserveExport(format, outcome string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, outcome).Inc()
}

// ObserveEmail counts one e-mail composition attempt.
func (m *Metrics) ObserveEmail(outcome string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpRequestTime.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
