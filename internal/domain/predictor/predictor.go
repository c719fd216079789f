// Package predictor defines the contract for forecasting a fight outcome and
// the rating-based model decoded from trained artifacts.
package predictor

import (
	"context"

	"github.com/okian/fightcast/internal/domain/model"
)

// Predictor forecasts the winner of a fight.
type Predictor interface {
	// Name identifies the model, e.g. for "Model 'EloModel' loaded."
	Name() string
	// Predict returns the favourite and its win probability. A nil outcome
	// with a nil error means the model cannot predict this fight, typically
	// because a fighter is unknown.
	Predict(ctx context.Context, fight model.Fight) (*model.Outcome, error)
}
