// Package predictcli implements the predict command: load a trained model
// artifact and forecast the winner of a hypothetical fight.
package predictcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fightcast/internal/adapters/artifact"
	"github.com/okian/fightcast/internal/config"
	"github.com/okian/fightcast/internal/domain/model"
	"github.com/okian/fightcast/pkg/logger"
	"github.com/okian/fightcast/pkg/metrics"
)

// Exit codes returned by Main.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ModelLoader checks for and loads a model artifact at path.
type ModelLoader interface {
	Check(ctx context.Context, path string) error
	Load(ctx context.Context, path string) (*artifact.Artifact, error)
}

// Options configures a single prediction run.
type Options struct {
	Fighter1  string
	Fighter2  string
	ModelPath string
	Format    string

	Loader  ModelLoader
	Stdout  io.Writer
	Log     logger.Logger
	Metrics *metrics.Manager
	Now     func() time.Time
	NewID   func() string
}

func (o *Options) setDefaults() {
	if o.Format == "" {
		o.Format = config.FormatText
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Log == nil {
		o.Log = logger.Nop()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Default()
	}
	if o.Loader == nil {
		o.Loader = artifact.NewLoader(artifact.WithLogger(o.Log), artifact.WithMetrics(o.Metrics))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
}

// PredictNewFight loads the model at opts.ModelPath and prints the predicted
// winner of opts.Fighter1 vs opts.Fighter2 dated today. A model that cannot
// predict the fight is reported on stdout and is not an error.
func PredictNewFight(ctx context.Context, opts Options) error {
	opts.setDefaults()
	out := newPrinter(opts.Stdout, opts.Format)
	id := opts.NewID()

	out.banner("--- Predicting New Fight ---")

	if err := opts.Loader.Check(ctx, opts.ModelPath); err != nil {
		opts.Metrics.RecordPrediction(metrics.ResultFailed, 0)
		return err
	}
	out.banner(fmt.Sprintf("Loading model from %s...", opts.ModelPath))
	a, err := opts.Loader.Load(ctx, opts.ModelPath)
	if err != nil {
		opts.Metrics.RecordPrediction(metrics.ResultFailed, 0)
		return err
	}
	out.banner(fmt.Sprintf("Model '%s' loaded.", a.Model.Name()))

	fight, err := model.NewFight(opts.Fighter1, opts.Fighter2, opts.Now())
	if err != nil {
		opts.Metrics.RecordPrediction(metrics.ResultFailed, 0)
		return err
	}

	out.banner("")
	out.banner(fmt.Sprintf("Predicting winner for: %s vs. %s", fight.Fighter1, fight.Fighter2))

	outcome, err := a.Model.Predict(ctx, fight)
	if err != nil {
		opts.Metrics.RecordPrediction(metrics.ResultFailed, 0)
		return fmt.Errorf("predict %s vs. %s: %w", fight.Fighter1, fight.Fighter2, err)
	}

	if outcome == nil || outcome.Winner == "" {
		opts.Metrics.RecordPrediction(metrics.ResultNoPrediction, 0)
		opts.Log.Info(ctx, "no prediction",
			logger.String("prediction_id", id),
			logger.String("fighter_1", fight.Fighter1),
			logger.String("fighter_2", fight.Fighter2))
		return out.result(report{ID: id, Fight: fight, Model: a.Model.Name()})
	}
	if !outcome.Valid() {
		opts.Metrics.RecordPrediction(metrics.ResultFailed, 0)
		return fmt.Errorf("%w: winner %q probability %v", ErrInvalidOutcome, outcome.Winner, outcome.Probability)
	}

	opts.Metrics.RecordPrediction(metrics.ResultPredicted, outcome.Probability)
	opts.Log.Info(ctx, "prediction complete",
		logger.String("prediction_id", id),
		logger.String("winner", outcome.Winner),
		logger.Float64("probability", outcome.Probability))
	return out.result(report{ID: id, Fight: fight, Model: a.Model.Name(), Outcome: outcome})
}

// Main runs the predict command and returns the process exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := logger.InitWithWriter(stderr); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return ExitFailure
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("predict")

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return ExitFailure
	}

	parsed, err := ParseArgs(args, cfg)
	switch {
	case errors.Is(err, ErrHelp):
		ShowHelp(stdout)
		return ExitOK
	case err != nil:
		fmt.Fprintf(stderr, "%v\n\n", err)
		ShowHelp(stderr)
		return ExitUsage
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	log.Debug(ctx, "configuration loaded",
		logger.String("model_path", cfg.ModelPath),
		logger.String("output_format", cfg.OutputFormat),
		logger.Bool("fuzzy_match", cfg.FuzzyMatch))

	mm := metrics.Default()
	loader := artifact.NewLoader(
		artifact.WithLogger(logger.Named("artifact")),
		artifact.WithMetrics(mm),
		artifact.WithFuzzyMatching(cfg.FuzzyMatch),
	)

	runErr := PredictNewFight(ctx, Options{
		Fighter1:  parsed.Fighter1,
		Fighter2:  parsed.Fighter2,
		ModelPath: cfg.ModelPath,
		Format:    cfg.OutputFormat,
		Loader:    loader,
		Stdout:    stdout,
		Log:       log,
		Metrics:   mm,
	})

	if cfg.MetricsTextfile != "" {
		if err := mm.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn(ctx, "metrics export failed", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "error: %v\n", runErr)
		return ExitFailure
	}
	return ExitOK
}
