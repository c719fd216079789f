// Package metrics provides Prometheus metrics for the fightcast prediction tool.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values for predictions_total.
const (
	ResultPredicted    = "predicted"
	ResultNoPrediction = "no_prediction"
	ResultFailed       = "failed"
)

// Method label values for name_resolutions_total.
const (
	MethodExact = "exact"
	MethodAlias = "alias"
	MethodFuzzy = "fuzzy"
	MethodMiss  = "miss"
)

// Manager owns the Prometheus collectors used by the CLI.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	predictions           *prometheus.CounterVec
	predictionProbability prometheus.Gauge
	modelLoadDuration     prometheus.Histogram
	modelFighters         prometheus.Gauge
	nameResolutions       *prometheus.CounterVec
	errors                *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager = NewManager() //nolint:gochecknoglobals // process-wide metrics for a single CLI run

// NewManager creates a metrics manager. Each manager owns its own registry
// unless one is supplied, so default Go/process collectors never leak into
// exported textfiles.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fightcast",
		subsystem:        "predict",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of prediction attempts by result",
	}, []string{"result"})

	m.predictionProbability = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_probability",
		Help:      "Win probability of the most recent predicted favourite",
	})

	m.modelLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_load_duration_milliseconds",
		Help:      "Time spent reading and decoding the model artifact",
		Buckets:   m.histogramBuckets,
	})

	m.modelFighters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_fighters",
		Help:      "Number of fighters known to the loaded model",
	})

	m.nameResolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "name_resolutions_total",
		Help:      "Fighter name lookups by resolution method",
	}, []string{"method"})

	m.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by type",
	}, []string{"type"})
}

// RecordPrediction counts a prediction attempt and, when predicted, stores
// the favourite's probability.
func (m *Manager) RecordPrediction(result string, probability float64) {
	if !m.enabled {
		return
	}
	m.predictions.WithLabelValues(result).Inc()
	if result == ResultPredicted {
		m.predictionProbability.Set(probability)
	}
}

// RecordModelLoad records how long loading took and the model size.
func (m *Manager) RecordModelLoad(d time.Duration, fighters int) {
	if !m.enabled {
		return
	}
	m.modelLoadDuration.Observe(float64(d) / float64(time.Millisecond))
	m.modelFighters.Set(float64(fighters))
}

// RecordNameResolution counts a fighter name lookup.
func (m *Manager) RecordNameResolution(method string) {
	if !m.enabled {
		return
	}
	m.nameResolutions.WithLabelValues(method).Inc()
}

// RecordError counts an error of the given type.
func (m *Manager) RecordError(errorType string) {
	if !m.enabled {
		return
	}
	m.errors.WithLabelValues(errorType).Inc()
}

// Registry exposes the manager's registry as a gatherer.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// suitable for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}
