package predictcli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrUsage          = errors.New("usage error")
	ErrHelp           = errors.New("help requested")
	ErrInvalidOutcome = errors.New("model returned an invalid outcome")
)
