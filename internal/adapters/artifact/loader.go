// Package artifact reads trained model artifacts from disk.
//
// Artifacts are YAML documents (JSON also decodes, being a YAML subset):
//
//	name: UFC Elo
//	kind: elo
//	version: 3
//	trained_at: 2026-09-30
//	scale: 400
//	mean: 1500
//	decay_per_year: 0.15
//	fighters:
//	  - name: Jon Jones
//	    aliases: [Bones]
//	    rating: 1862.4
//	    last_fight: November 16, 2024
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/fightcast/internal/domain/predictor"
	"github.com/okian/fightcast/pkg/logger"
	"github.com/okian/fightcast/pkg/metrics"
)

// Artifact is a decoded model plus its provenance.
type Artifact struct {
	Path      string
	Kind      string
	Version   int
	TrainedAt time.Time // zero when the artifact does not record it
	Model     predictor.Predictor
}

// Loader decodes model artifacts.
type Loader struct {
	log     logger.Logger
	metrics *metrics.Manager
	fuzzy   bool
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		log:     logger.Nop(),
		metrics: metrics.Default(),
		fuzzy:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check reports whether path names a readable artifact file without
// decoding it. A missing file yields an error wrapping ErrModelNotFound that
// names path.
func (l *Loader) Check(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.metrics.RecordError("model_not_found")
			return fmt.Errorf("%w at '%s'. Please train and save a model first", ErrModelNotFound, path)
		}
		l.metrics.RecordError("model_read")
		return fmt.Errorf("%w: %w", ErrReadModel, err)
	}
	if info.IsDir() {
		l.metrics.RecordError("model_read")
		return fmt.Errorf("%w: '%s' is a directory", ErrReadModel, path)
	}
	return nil
}

// Load checks and decodes the artifact at path.
func (l *Loader) Load(ctx context.Context, path string) (*Artifact, error) {
	if err := l.Check(ctx, path); err != nil {
		return nil, err
	}

	start := time.Now()
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		l.metrics.RecordError("model_decode")
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, path, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		l.metrics.RecordError("model_decode")
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, path, err)
	}

	a, err := l.build(path, doc)
	if err != nil {
		l.metrics.RecordError("model_invalid")
		return nil, err
	}

	elapsed := time.Since(start)
	size := len(doc.Fighters)
	l.metrics.RecordModelLoad(elapsed, size)
	l.log.Debug(ctx, "model artifact decoded",
		logger.String("path", path),
		logger.String("model", a.Model.Name()),
		logger.Int("fighters", size),
		logger.Duration("elapsed", elapsed))
	return a, nil
}

func (l *Loader) build(path string, doc document) (*Artifact, error) {
	kind := strings.ToLower(strings.TrimSpace(doc.Kind))
	if kind == "" {
		kind = KindElo
	}
	if kind != KindElo {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, doc.Kind)
	}

	trainedAt, err := parseDate(doc.TrainedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: trained_at: %w", ErrInvalidModel, err)
	}

	opts, err := l.modelOptions(doc)
	if err != nil {
		return nil, err
	}

	fighters := make([]predictor.Fighter, 0, len(doc.Fighters))
	for i, n := range doc.Fighters {
		if n.Rating == nil {
			return nil, fmt.Errorf("%w: fighters[%d].rating is required", ErrInvalidModel, i)
		}
		last, err := parseDate(n.LastFight)
		if err != nil {
			return nil, fmt.Errorf("%w: fighters[%d].last_fight: %w", ErrInvalidModel, i, err)
		}
		fighters = append(fighters, predictor.Fighter{
			Name:      n.Name,
			Aliases:   n.Aliases,
			Rating:    *n.Rating,
			LastFight: last,
		})
	}

	m, err := predictor.NewEloModel(doc.Name, fighters, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, path, err)
	}

	return &Artifact{
		Path:      path,
		Kind:      kind,
		Version:   doc.Version,
		TrainedAt: trainedAt,
		Model:     m,
	}, nil
}

// modelOptions maps the artifact's rating parameters to model options. Absent
// parameters keep the model defaults; present ones must be usable.
func (l *Loader) modelOptions(doc document) ([]predictor.Option, error) {
	opts := []predictor.Option{
		predictor.WithFuzzyMatching(l.fuzzy),
		predictor.WithLogger(l.log),
		predictor.WithMetrics(l.metrics),
	}
	if v := doc.Scale; v != nil {
		if !(*v > 0) || math.IsInf(*v, 0) {
			return nil, fmt.Errorf("%w: scale must be a positive number, got %v", ErrInvalidModel, *v)
		}
		opts = append(opts, predictor.WithScale(*v))
	}
	if v := doc.Mean; v != nil {
		if !(*v > 0) || math.IsInf(*v, 0) {
			return nil, fmt.Errorf("%w: mean must be a positive number, got %v", ErrInvalidModel, *v)
		}
		opts = append(opts, predictor.WithMean(*v))
	}
	if v := doc.DecayPerYear; v != nil {
		if !(*v >= 0) || math.IsInf(*v, 0) {
			return nil, fmt.Errorf("%w: decay_per_year must not be negative, got %v", ErrInvalidModel, *v)
		}
		opts = append(opts, predictor.WithDecayPerYear(*v))
	}
	return opts, nil
}
