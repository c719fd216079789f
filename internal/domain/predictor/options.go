package predictor

import (
	"github.com/okian/fightcast/pkg/logger"
	"github.com/okian/fightcast/pkg/metrics"
)

// Option applies a configuration option to the EloModel.
type Option func(*EloModel)

// WithScale sets the logistic scale: a rating gap of one scale gives 10:1 odds.
func WithScale(scale float64) Option {
	return func(m *EloModel) {
		if scale > 0 {
			m.scale = scale
		}
	}
}

// WithMean sets the rating inactive fighters decay toward.
func WithMean(mean float64) Option {
	return func(m *EloModel) {
		if mean > 0 {
			m.mean = mean
		}
	}
}

// WithDecayPerYear sets the exponential inactivity decay rate. Zero disables decay.
func WithDecayPerYear(rate float64) Option {
	return func(m *EloModel) {
		if rate >= 0 {
			m.decayPerYear = rate
		}
	}
}

// WithFuzzyMatching toggles approximate fighter name lookups.
func WithFuzzyMatching(enabled bool) Option {
	return func(m *EloModel) {
		m.fuzzy = enabled
	}
}

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(m *EloModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(mm *metrics.Manager) Option {
	return func(m *EloModel) {
		if mm != nil {
			m.metrics = mm
		}
	}
}
