package artifact_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/fightcast/internal/adapters/artifact"
	"github.com/okian/fightcast/internal/domain/model"
	"github.com/okian/fightcast/internal/domain/predictor"
	"github.com/okian/fightcast/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

const eloYAML = `
name: UFC Elo
kind: elo
version: 3
trained_at: 2026-09-30
scale: 400
mean: 1500
decay_per_year: 0
fighters:
  - name: Jon Jones
    aliases: [Bones]
    rating: 1600
    last_fight: November 16, 2024
  - name: Stipe Miocic
    rating: 1400
    last_fight: "2024-11-16"
`

const eloJSON = `{
  "name": "JSON Elo",
  "fighters": [
    {"name": "Jon Jones", "rating": 1600},
    {"name": "Stipe Miocic", "rating": 1400}
  ]
}`

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	convey.Convey("Given an artifact loader", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		loader := artifact.NewLoader(artifact.WithMetrics(metrics.NewManager()))

		convey.Convey("When the model file does not exist", func() {
			path := filepath.Join(dir, "missing", "XGBoostModel.yaml")
			a, err := loader.Load(ctx, path)

			convey.Convey("Then a not-found error names the exact path", func() {
				convey.So(a, convey.ShouldBeNil)
				convey.So(errors.Is(err, artifact.ErrModelNotFound), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "'"+path+"'")
			})
		})

		convey.Convey("When several different paths are missing", func() {
			for _, name := range []string{"a.yaml", "b.json", "nested/c.yaml", "d"} {
				path := filepath.Join(dir, name)
				_, err := loader.Load(ctx, path)
				convey.So(errors.Is(err, artifact.ErrModelNotFound), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, path)
			}
		})

		convey.Convey("When the path is a directory", func() {
			_, err := loader.Load(ctx, dir)
			convey.So(errors.Is(err, artifact.ErrReadModel), convey.ShouldBeTrue)
		})

		convey.Convey("When the YAML artifact is valid", func() {
			path := writeFile(dir, "elo.yaml", eloYAML)
			a, err := loader.Load(ctx, path)

			convey.Convey("Then the artifact and its provenance are decoded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(a.Path, convey.ShouldEqual, path)
				convey.So(a.Kind, convey.ShouldEqual, artifact.KindElo)
				convey.So(a.Version, convey.ShouldEqual, 3)
				convey.So(a.TrainedAt.Year(), convey.ShouldEqual, 2026)
				convey.So(a.TrainedAt.Month(), convey.ShouldEqual, time.September)
				convey.So(a.Model.Name(), convey.ShouldEqual, "UFC Elo")
			})

			convey.Convey("And the model predicts known fighters", func() {
				out, err := a.Model.Predict(ctx, model.Fight{
					Fighter1: "Jon Jones", Fighter2: "Stipe Miocic", EventDate: "October 19, 2026",
				})
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.Winner, convey.ShouldEqual, "Jon Jones")
				convey.So(out.Percent(), convey.ShouldEqual, "76.0%")
			})
		})

		convey.Convey("When the artifact is JSON without a kind", func() {
			path := writeFile(dir, "elo.json", eloJSON)
			a, err := loader.Load(ctx, path)

			convey.Convey("Then it decodes as an Elo model", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(a.Kind, convey.ShouldEqual, artifact.KindElo)
				convey.So(a.Model.Name(), convey.ShouldEqual, "JSON Elo")
				convey.So(a.TrainedAt.IsZero(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the artifact is not parseable", func() {
			path := writeFile(dir, "broken.yaml", "fighters: [ {name: ")
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
		})

		convey.Convey("When the artifact declares another kind", func() {
			path := writeFile(dir, "xgb.yaml", "kind: xgboost\nfighters:\n  - name: A\n    rating: 1\n")
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, artifact.ErrUnsupportedModel), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "xgboost")
		})

		convey.Convey("When the artifact has no fighters", func() {
			path := writeFile(dir, "empty.yaml", "name: Empty\nkind: elo\n")
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
			convey.So(errors.Is(err, predictor.ErrNoFighters), convey.ShouldBeTrue)
		})

		convey.Convey("When the artifact repeats a fighter", func() {
			path := writeFile(dir, "dup.yaml", "fighters:\n  - name: A\n    rating: 1\n  - name: a\n    rating: 2\n")
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, predictor.ErrDuplicateFighter), convey.ShouldBeTrue)
		})

		convey.Convey("When a last_fight date is malformed", func() {
			path := writeFile(dir, "date.yaml", "fighters:\n  - name: A\n    rating: 1\n    last_fight: someday\n")
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "fighters[0].last_fight")
		})

		convey.Convey("When a fighter has no rating", func() {
			path := writeFile(dir, "norating.yaml", "fighters:\n  - name: Jon Jones\n    rating: 1600\n  - name: Stipe Miocic\n")
			_, err := loader.Load(ctx, path)

			convey.Convey("Then the missing field is named", func() {
				convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "fighters[1].rating")
			})
		})

		convey.Convey("When a rating is explicitly zero", func() {
			path := writeFile(dir, "zero.yaml", "fighters:\n  - name: A\n    rating: 0\n  - name: B\n    rating: 0\n")
			_, err := loader.Load(ctx, path)
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When two fighters share an alias", func() {
			path := writeFile(dir, "alias.yaml", `
fighters:
  - name: Jon Jones
    aliases: [GOAT]
    rating: 1600
  - name: Stipe Miocic
    aliases: [GOAT]
    rating: 1400
`)
			_, err := loader.Load(ctx, path)
			convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
			convey.So(errors.Is(err, predictor.ErrDuplicateFighter), convey.ShouldBeTrue)
		})

		convey.Convey("When rating parameters are out of range", func() {
			cases := map[string]string{
				"scale: -400":        "scale",
				"scale: 0":           "scale",
				"mean: -1":           "mean",
				"decay_per_year: -1": "decay_per_year",
			}
			for param, field := range cases {
				path := writeFile(dir, "params.yaml", param+"\nfighters:\n  - name: A\n    rating: 1\n")
				_, err := loader.Load(ctx, path)
				convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, field)
			}
		})

		convey.Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := loader.Load(cctx, filepath.Join(dir, "whatever.yaml"))
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestLoader_Check(t *testing.T) {
	convey.Convey("Given an artifact loader", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		loader := artifact.NewLoader(artifact.WithMetrics(metrics.NewManager()))

		convey.Convey("When the file exists but does not decode", func() {
			path := writeFile(dir, "broken.yaml", "fighters: [ {name: ")

			convey.Convey("Then Check passes and Load fails", func() {
				convey.So(loader.Check(ctx, path), convey.ShouldBeNil)
				_, err := loader.Load(ctx, path)
				convey.So(errors.Is(err, artifact.ErrInvalidModel), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is missing", func() {
			path := filepath.Join(dir, "missing.yaml")
			err := loader.Check(ctx, path)
			convey.So(errors.Is(err, artifact.ErrModelNotFound), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, path)
		})

		convey.Convey("When the path is a directory", func() {
			convey.So(errors.Is(loader.Check(ctx, dir), artifact.ErrReadModel), convey.ShouldBeTrue)
		})
	})
}

func TestLoader_FuzzyOption(t *testing.T) {
	convey.Convey("Given a loader with fuzzy matching disabled", t, func() {
		dir := t.TempDir()
		path := writeFile(dir, "elo.yaml", eloYAML)
		loader := artifact.NewLoader(artifact.WithFuzzyMatching(false), artifact.WithMetrics(metrics.NewManager()))

		a, err := loader.Load(context.Background(), path)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When predicting with a partial name", func() {
			out, err := a.Model.Predict(context.Background(), model.Fight{
				Fighter1: "Miocic", Fighter2: "Jon Jones", EventDate: "October 19, 2026",
			})

			convey.Convey("Then the model cannot predict", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldBeNil)
			})
		})
	})
}
