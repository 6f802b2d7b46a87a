// Package metrics exposes extraction counters for the HTTP service. The
// registry is private to each Metrics value so tests and multiple servers do
// not collide on the default registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

const namespace = "vabenefits"

type Metrics struct {
	registry *prometheus.Registry

	documents      *prometheus.CounterVec
	patternMatches *prometheus.CounterVec
	missingFields  *prometheus.CounterVec
	extractionTier *prometheus.CounterVec
	warnings       *prometheus.CounterVec
	ocrDuration    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents processed, by document type and text source.",
		}, []string{"document", "source"}),
		patternMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_pattern_matches_total",
			Help:      "DD-214 fields extracted, by field and winning pattern id.",
		}, []string{"field", "pattern"}),
		missingFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_fields_total",
			Help:      "DD-214 fields no pattern could extract.",
		}, []string{"field"}),
		extractionTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "condition_extraction_tier_total",
			Help:      "Rating decisions by the condition extraction tier that produced results.",
		}, []string{"tier"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_warnings_total",
			Help:      "Rating decision validation warnings, by code.",
		}, []string{"code"}),
		ocrDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ocr_page_duration_seconds",
			Help:      "Time spent running OCR on one page image.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		m.documents,
		m.patternMatches,
		m.missingFields,
		m.extractionTier,
		m.warnings,
		m.ocrDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordDD214(res dto.DD214Result, source dto.TextSource) {
	m.documents.WithLabelValues(string(dto.DocTypeDD214), string(source)).Inc()
	for _, f := range res.Fields {
		m.patternMatches.WithLabelValues(f.Name, f.MatchedPatternID).Inc()
	}
	for _, name := range res.MissingFields {
		m.missingFields.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) RecordRatingDecision(res dto.RatingDecisionResult, source dto.TextSource) {
	m.documents.WithLabelValues(string(dto.DocTypeRatingDecision), string(source)).Inc()
	m.extractionTier.WithLabelValues(strconv.Itoa(res.Tier)).Inc()
	for _, w := range res.Warnings {
		m.warnings.WithLabelValues(w.Code).Inc()
	}
}

func (m *Metrics) ObserveOCR(d time.Duration) {
	m.ocrDuration.Observe(d.Seconds())
}
