package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/okian/fightcast/internal/predictcli"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the predict binary entry point", t, func() {
		var stdout, stderr bytes.Buffer

		convey.Convey("When asked for help", func() {
			code := run([]string{"--help"}, &stdout, &stderr)

			convey.Convey("Then it prints usage and exits 0", func() {
				convey.So(code, convey.ShouldEqual, predictcli.ExitOK)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "Predict the outcome of a new UFC fight.")
			})
		})

		convey.Convey("When the model file is missing", func() {
			missing := filepath.Join(t.TempDir(), "absent.yaml")
			code := run([]string{"Jon Jones", "Stipe Miocic", "--model_path", missing}, &stdout, &stderr)

			convey.Convey("Then it exits non-zero naming the path", func() {
				convey.So(code, convey.ShouldEqual, predictcli.ExitFailure)
				convey.So(stderr.String(), convey.ShouldContainSubstring, missing)
			})
		})
	})
}
