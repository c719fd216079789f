package artifact

import "errors"

// Sentinel kinds for model artifact errors.
var (
	ErrModelNotFound    = errors.New("model file not found")
	ErrReadModel        = errors.New("read model artifact failed")
	ErrInvalidModel     = errors.New("invalid model artifact")
	ErrUnsupportedModel = errors.New("unsupported model kind")
)
