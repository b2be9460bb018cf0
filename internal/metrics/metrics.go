// Package metrics provides Prometheus metrics for the document engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine. Instances register
// against an injected Registerer so tests can use isolated registries.
type Metrics struct {
	// Copy engine metrics
	CopiesTotal  *prometheus.CounterVec
	CopyDuration *prometheus.HistogramVec
	CopiedNodes  prometheus.Counter

	// Region resolver metrics
	ResolverRunsTotal prometheus.Counter
	ResolverDuration  prometheus.Histogram
	ResolvedRegions   prometheus.Counter

	// Annotation index metrics
	AnnotationQueriesTotal prometheus.Counter

	// Document metrics
	DocNodesTotal       prometheus.Gauge
	DocAnnotationsTotal prometheus.Gauge

	StartTime time.Time
}

// New creates and registers all engine metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		StartTime: time.Now(),
	}

	m.CopiesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substance_copies_total",
			Help: "Total number of copy operations",
		},
		[]string{"kind", "status"},
	)

	m.CopyDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "substance_copy_duration_seconds",
			Help:    "Duration of copy operations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"kind"},
	)

	m.CopiedNodes = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "substance_copied_nodes_total",
			Help: "Total number of nodes copied into snippets",
		},
	)

	m.ResolverRunsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "substance_resolver_runs_total",
			Help: "Total number of region state resolutions",
		},
	)

	m.ResolverDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "substance_resolver_duration_seconds",
			Help:    "Duration of region state resolutions in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
	)

	m.ResolvedRegions = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "substance_resolved_regions_total",
			Help: "Total number of regions assigned a state",
		},
	)

	m.AnnotationQueriesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "substance_annotation_queries_total",
			Help: "Total number of annotation index window queries",
		},
	)

	m.DocNodesTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "substance_document_nodes_total",
			Help: "Number of nodes in the observed document",
		},
	)

	m.DocAnnotationsTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "substance_document_annotations_total",
			Help: "Number of annotations in the observed document",
		},
	)

	return m
}

// ObserveCopy records one copy operation.
func (m *Metrics) ObserveCopy(kind, status string, duration time.Duration) {
	m.CopiesTotal.WithLabelValues(kind, status).Inc()
	m.CopyDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// ObserveResolve records one resolver run over regionCount regions.
func (m *Metrics) ObserveResolve(regionCount int, duration time.Duration) {
	m.ResolverRunsTotal.Inc()
	m.ResolvedRegions.Add(float64(regionCount))
	m.ResolverDuration.Observe(duration.Seconds())
}

// DocumentObserver reports arena sizes for the document gauges.
type DocumentObserver interface {
	NodeCount() int
	AnnotationCount() int
}

// ObserveDocument updates the document gauges from doc.
func (m *Metrics) ObserveDocument(doc DocumentObserver) {
	m.DocNodesTotal.Set(float64(doc.NodeCount()))
	m.DocAnnotationsTotal.Set(float64(doc.AnnotationCount()))
}
