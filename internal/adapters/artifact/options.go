package artifact

import (
	"github.com/okian/fightcast/pkg/logger"
	"github.com/okian/fightcast/pkg/metrics"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger for the loader and the models it builds.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(ld *Loader) {
		if m != nil {
			ld.metrics = m
		}
	}
}

// WithFuzzyMatching toggles approximate name lookups on loaded models.
func WithFuzzyMatching(enabled bool) Option {
	return func(ld *Loader) {
		ld.fuzzy = enabled
	}
}
