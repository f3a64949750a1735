package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the web service.
type Metrics struct {
	registry           *prometheus.Registry
	ResolutionsTotal   *prometheus.CounterVec
	ValidationWarnings *prometheus.CounterVec
	CatalogFetches     *prometheus.CounterVec
}

// New registers the collectors on a fresh registry so tests can build many instances.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seo_resolutions_total",
			Help: "Metadata resolutions by structured-data kind.",
		}, []string{"kind"}), // "none" when no structured data was produced
		ValidationWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seo_validation_warnings_total",
			Help: "Fields reported over their platform length limit.",
		}, []string{"field"}),
		CatalogFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seo_catalog_fetches_total",
			Help: "Backend record lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(
		m.ResolutionsTotal,
		m.ValidationWarnings,
		m.CatalogFetches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncResolution counts one resolution; an empty kind is recorded as "none".
func (m *Metrics) IncResolution(kind string) {
	if kind == "" {
		kind = "none"
	}
	m.ResolutionsTotal.WithLabelValues(kind).Inc()
}

// AddValidationWarnings counts one warning per violated field.
func (m *Metrics) AddValidationWarnings(fields []string) {
	for _, f := range fields {
		m.ValidationWarnings.WithLabelValues(f).Inc()
	}
}

// CatalogFetch implements catalog.Recorder.
func (m *Metrics) CatalogFetch(kind, outcome string) {
	m.CatalogFetches.WithLabelValues(kind, outcome).Inc()
}
