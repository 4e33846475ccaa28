// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CitationsFiled     *prometheus.CounterVec
	RecordsAutoCreated prometheus.Counter
	CitizensRegistered prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewFor(prometheus.DefaultRegisterer)
}

// NewFor registers the metrics on the given registerer. Tests pass a fresh
// prometheus.NewRegistry so repeated construction does not panic on
// duplicate registration.
func NewFor(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CitationsFiled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "interpolice_citations_filed_total",
			Help: "Total number of citations filed, partitioned by whether the filing escalated to a criminal record.",
		}, []string{"escalated"}),
		RecordsAutoCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "interpolice_criminal_records_auto_created_total",
			Help: "Total number of criminal records generated automatically by citation escalation.",
		}),
		CitizensRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "interpolice_citizens_registered_total",
			Help: "Total number of citizens registered.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "interpolice_http_requests_total",
			Help: "Total number of HTTP requests, partitioned by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interpolice_http_request_duration_seconds",
			Help:    "HTTP request latency, partitioned by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveCitationFiled records a filing outcome.
func (m *Metrics) ObserveCitationFiled(escalated bool) {
	label := "false"
	if escalated {
		label = "true"
		m.RecordsAutoCreated.Inc()
	}
	m.CitationsFiled.WithLabelValues(label).Inc()
}
