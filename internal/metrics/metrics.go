// Package metrics exposes Prometheus instrumentation for the ledger service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters.
type Metrics struct {
	registry *prometheus.Registry

	ImportsTotal       prometheus.Counter
	RowsImportedTotal  prometheus.Counter
	VerificationsTotal prometheus.Counter
	IssuesFoundTotal   *prometheus.CounterVec
}

// New creates a metrics set backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ImportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlens_imports_total",
			Help: "Number of dataset imports performed.",
		}),
		RowsImportedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlens_rows_imported_total",
			Help: "Number of canonical rows produced by imports.",
		}),
		VerificationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlens_verifications_total",
			Help: "Number of verification runs, cache hits excluded.",
		}),
		IssuesFoundTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerlens_issues_found_total",
			Help: "Number of issues raised by verification runs, by severity.",
		}, []string{"severity"}),
	}
}

// Handler returns the scrape endpoint for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveImport records one import producing rowCount canonical rows.
func (m *Metrics) ObserveImport(rowCount int) {
	if m == nil {
		return
	}
	m.ImportsTotal.Inc()
	m.RowsImportedTotal.Add(float64(rowCount))
}

// ObserveVerification records one verification run and its issue counts.
func (m *Metrics) ObserveVerification(errors, warnings int) {
	if m == nil {
		return
	}
	m.VerificationsTotal.Inc()
	m.IssuesFoundTotal.WithLabelValues("error").Add(float64(errors))
	m.IssuesFoundTotal.WithLabelValues("warning").Add(float64(warnings))
}
