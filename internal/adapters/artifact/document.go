package artifact

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/fightcast/internal/domain/model"
)

// KindElo is the only model kind this tool can decode.
const KindElo = "elo"

// dateLayouts lists the accepted spellings of dates inside an artifact.
var dateLayouts = []string{model.EventDateLayout, time.DateOnly, time.RFC3339} //nolint:gochecknoglobals // read-only table

// document mirrors the on-disk artifact schema.
type document struct {
	Name         string        `koanf:"name"`
	Kind         string        `koanf:"kind"`
	Version      int           `koanf:"version"`
	TrainedAt    any           `koanf:"trained_at"`
	Scale        *float64      `koanf:"scale"`
	Mean         *float64      `koanf:"mean"`
	DecayPerYear *float64      `koanf:"decay_per_year"`
	Fighters     []fighterNode `koanf:"fighters"`
}

type fighterNode struct {
	Name      string   `koanf:"name"`
	Aliases   []string `koanf:"aliases"`
	Rating    *float64 `koanf:"rating"`
	LastFight any      `koanf:"last_fight"`
}

// parseDate accepts a string in one of dateLayouts or a time already decoded
// by the YAML parser. Nil yields the zero time.
func parseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	default:
		return time.Time{}, fmt.Errorf("unexpected date value of type %T", v)
	}
}
