// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EventDateLayout renders dates as "Month DD, YYYY".
const EventDateLayout = "January 02, 2006"

// ErrEmptyFighter is returned when a fighter name is blank.
var ErrEmptyFighter = errors.New("fighter name must not be empty")

// Fight is the prediction record handed to a model.
type Fight struct {
	Fighter1  string `json:"fighter_1"`
	Fighter2  string `json:"fighter_2"`
	EventDate string `json:"event_date"`
}

// NewFight builds a Fight for two named fighters dated at now.
func NewFight(fighter1, fighter2 string, now time.Time) (Fight, error) {
	f1 := strings.TrimSpace(fighter1)
	f2 := strings.TrimSpace(fighter2)
	if f1 == "" {
		return Fight{}, fmt.Errorf("%w: fighter1", ErrEmptyFighter)
	}
	if f2 == "" {
		return Fight{}, fmt.Errorf("%w: fighter2", ErrEmptyFighter)
	}
	return Fight{
		Fighter1:  f1,
		Fighter2:  f2,
		EventDate: now.Format(EventDateLayout),
	}, nil
}

// Date parses EventDate back into a time.
func (f Fight) Date() (time.Time, error) {
	return time.Parse(EventDateLayout, f.EventDate)
}

// Outcome is what a model returns for a Fight. A nil *Outcome means the
// model could not predict.
type Outcome struct {
	Winner      string  `json:"winner"`
	Probability float64 `json:"probability"`
}

// Valid reports whether the outcome names a winner with a probability in [0,1].
func (o *Outcome) Valid() bool {
	return o != nil && o.Winner != "" && o.Probability >= 0 && o.Probability <= 1
}

// Percent renders the probability as a one-decimal percentage, e.g. "73.0%".
func (o *Outcome) Percent() string {
	if o == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", o.Probability*100)
}
