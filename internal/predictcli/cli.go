package predictcli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/okian/fightcast/internal/config"
)

// positionalArgs is the number of fighter names expected.
const positionalArgs = 2

// Args holds the parsed command line.
type Args struct {
	Fighter1 string
	Fighter2 string
}

// ParseArgs parses args into the fighter names and applies flag overrides
// onto cfg. Flags may appear before, between or after the names.
func ParseArgs(args []string, cfg *config.Config) (Args, error) {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ModelPath, "model_path", cfg.ModelPath, "Path to the saved model file")
	fs.StringVar(&cfg.OutputFormat, "format", cfg.OutputFormat, "Output format: text or json")
	fs.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.FuzzyMatch, "fuzzy", cfg.FuzzyMatch, "Match fighter names approximately")
	fs.StringVar(&cfg.MetricsTextfile, "metrics_textfile", cfg.MetricsTextfile, "Write Prometheus metrics to this file")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return Args{}, ErrHelp
			}
			return Args{}, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	if len(positional) != positionalArgs {
		return Args{}, fmt.Errorf("%w: expected fighter1 and fighter2, got %d argument(s)", ErrUsage, len(positional))
	}
	a := Args{
		Fighter1: strings.TrimSpace(positional[0]),
		Fighter2: strings.TrimSpace(positional[1]),
	}
	if a.Fighter1 == "" || a.Fighter2 == "" {
		return Args{}, fmt.Errorf("%w: fighter names must not be empty", ErrUsage)
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	if err := cfg.Validate(); err != nil {
		return Args{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return a, nil
}

// ShowHelp prints usage information for the predict command.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Predict the outcome of a new UFC fight.

Usage:
  predict [options] fighter1 fighter2

Arguments:
  fighter1    The full name of the first fighter (e.g., 'Jon Jones').
  fighter2    The full name of the second fighter (e.g., 'Stipe Miocic').

Options:
  --model_path string
        Path to the saved model file (default "`+config.DefaultModelPath+`")
  --format string
        Output format: text or json (default "text")
  --log_level string
        Log level: debug, info, warn, error (default "warn")
  --fuzzy
        Match fighter names approximately (default true)
  --metrics_textfile string
        Write Prometheus metrics to this file after the run
  --help
        Show this help message

Environment:
  FIGHTCAST_CONFIG      YAML config file
  FIGHTCAST_ENV_FILE    dotenv file (default .env)
  FIGHTCAST_<KEY>       overrides config keys, e.g. FIGHTCAST_MODEL_PATH

Examples:
  predict "Jon Jones" "Stipe Miocic"
  predict --model_path models/elo_model.yaml "Jon Jones" "Stipe Miocic"
  predict "Jon Jones" "Stipe Miocic" --format json
`)
}
