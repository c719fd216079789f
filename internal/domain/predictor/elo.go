package predictor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/okian/fightcast/internal/domain/model"
	"github.com/okian/fightcast/pkg/logger"
	"github.com/okian/fightcast/pkg/metrics"
)

// Default rating model parameters.
const (
	defaultScale = 400.0
	defaultMean  = 1500.0
	hoursPerYear = 24 * 365.25
)

// Fighter is one rated entry of a trained roster.
type Fighter struct {
	Name      string
	Aliases   []string
	Rating    float64
	LastFight time.Time // zero when unknown
}

// EloModel predicts fights from per-fighter ratings using the logistic
// Elo expectation.
type EloModel struct {
	name         string
	fighters     []Fighter
	scale        float64
	mean         float64
	decayPerYear float64
	fuzzy        bool
	resolver     *resolver
	log          logger.Logger
	metrics      *metrics.Manager
}

// NewEloModel validates the roster and builds a model.
func NewEloModel(name string, fighters []Fighter, opts ...Option) (*EloModel, error) {
	if len(fighters) == 0 {
		return nil, ErrNoFighters
	}

	m := &EloModel{
		name:     strings.TrimSpace(name),
		fighters: make([]Fighter, len(fighters)),
		scale:    defaultScale,
		mean:     defaultMean,
		fuzzy:    true,
		log:      logger.Nop(),
		metrics:  metrics.Default(),
	}
	if m.name == "" {
		m.name = "EloModel"
	}
	for _, opt := range opts {
		opt(m)
	}

	names := make(map[string]int, len(fighters))
	for i, f := range fighters {
		key := normalizeName(f.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidFighter, i)
		}
		if math.IsNaN(f.Rating) || math.IsInf(f.Rating, 0) {
			return nil, fmt.Errorf("%w: %q has a non-finite rating", ErrInvalidFighter, f.Name)
		}
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFighter, f.Name)
		}
		names[key] = i
		m.fighters[i] = f
	}
	if err := checkAliases(m.fighters, names); err != nil {
		return nil, err
	}

	m.resolver = newResolver(m.fighters, m.fuzzy)
	return m, nil
}

// checkAliases rejects an alias that names, or is shared with, another fighter.
func checkAliases(fighters []Fighter, names map[string]int) error {
	owners := make(map[string]int)
	for i, f := range fighters {
		for _, a := range f.Aliases {
			ak := normalizeName(a)
			if ak == "" {
				continue
			}
			if j, ok := names[ak]; ok && j != i {
				return fmt.Errorf("%w: alias %q of %q is the name of %q", ErrDuplicateFighter, a, f.Name, fighters[j].Name)
			}
			if j, ok := owners[ak]; ok && j != i {
				return fmt.Errorf("%w: alias %q is shared by %q and %q", ErrDuplicateFighter, a, fighters[j].Name, f.Name)
			}
			owners[ak] = i
		}
	}
	return nil
}

// Name returns the model's display name.
func (m *EloModel) Name() string { return m.name }

// Size returns the number of rated fighters.
func (m *EloModel) Size() int { return len(m.fighters) }

// Predict forecasts the favourite of fight. Unknown fighters, or both names
// resolving to the same fighter, yield a nil outcome.
func (m *EloModel) Predict(ctx context.Context, fight model.Fight) (*model.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	var eventDate time.Time
	if fight.EventDate != "" {
		d, err := fight.Date()
		if err != nil {
			return nil, fmt.Errorf("%w: event_date %q: %w", ErrInvalidFight, fight.EventDate, err)
		}
		eventDate = d
	}

	i1, ok1 := m.lookup(ctx, fight.Fighter1)
	i2, ok2 := m.lookup(ctx, fight.Fighter2)
	if !ok1 || !ok2 {
		return nil, nil
	}
	if i1 == i2 {
		m.log.Info(ctx, "both names resolve to the same fighter",
			logger.String("fighter", m.fighters[i1].Name))
		return nil, nil
	}

	r1 := m.effectiveRating(m.fighters[i1], eventDate)
	r2 := m.effectiveRating(m.fighters[i2], eventDate)
	p1 := m.expected(r1, r2)

	m.log.Debug(ctx, "computed expectation",
		logger.String("fighter_1", m.fighters[i1].Name),
		logger.Float64("rating_1", r1),
		logger.String("fighter_2", m.fighters[i2].Name),
		logger.Float64("rating_2", r2),
		logger.Float64("p1", p1))

	if p1 >= 0.5 {
		return &model.Outcome{Winner: fight.Fighter1, Probability: p1}, nil
	}
	return &model.Outcome{Winner: fight.Fighter2, Probability: 1 - p1}, nil
}

func (m *EloModel) lookup(ctx context.Context, name string) (int, bool) {
	i, method, ok := m.resolver.resolve(name)
	m.metrics.RecordNameResolution(method)
	if !ok {
		m.log.Info(ctx, "fighter not in model", logger.String("name", name))
		return -1, false
	}
	if method == metrics.MethodFuzzy {
		m.log.Info(ctx, "fuzzy-matched fighter name",
			logger.String("input", name),
			logger.String("matched", m.fighters[i].Name))
	}
	return i, true
}

// effectiveRating shrinks a rating toward the mean by exp(-decay*years idle).
func (m *EloModel) effectiveRating(f Fighter, eventDate time.Time) float64 {
	if m.decayPerYear == 0 || f.LastFight.IsZero() || eventDate.IsZero() || !eventDate.After(f.LastFight) {
		return f.Rating
	}
	years := eventDate.Sub(f.LastFight).Hours() / hoursPerYear
	return m.mean + (f.Rating-m.mean)*math.Exp(-m.decayPerYear*years)
}

// expected is the probability that a fighter rated r1 beats one rated r2.
func (m *EloModel) expected(r1, r2 float64) float64 {
	return 1 / (1 + math.Pow(10, (r2-r1)/m.scale))
}
