package predictor

import "errors"

// Sentinel kinds for model construction and prediction errors.
var (
	ErrNoFighters       = errors.New("model has no fighters")
	ErrDuplicateFighter = errors.New("duplicate fighter name")
	ErrInvalidFighter   = errors.New("invalid fighter entry")
	ErrInvalidFight     = errors.New("invalid fight record")
)
