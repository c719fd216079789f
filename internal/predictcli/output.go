package predictcli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/fightcast/internal/config"
	"github.com/okian/fightcast/internal/domain/model"
)

// NoPredictionMessage is printed when the model cannot forecast the fight.
const NoPredictionMessage = "Could not make a prediction. One of the fighters may not be in the dataset."

// report is the outcome of one run.
type report struct {
	ID      string
	Fight   model.Fight
	Model   string
	Outcome *model.Outcome // nil when no prediction was made
}

// jsonReport is the --format json document.
type jsonReport struct {
	PredictionID string   `json:"prediction_id"`
	Fighter1     string   `json:"fighter_1"`
	Fighter2     string   `json:"fighter_2"`
	EventDate    string   `json:"event_date"`
	Model        string   `json:"model"`
	Predicted    bool     `json:"predicted"`
	Winner       string   `json:"winner,omitempty"`
	Probability  *float64 `json:"probability,omitempty"`
}

// printer writes progress banners and the final result in one format.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

// banner prints a progress line; json output has no banners.
func (p *printer) banner(line string) {
	if p.format == config.FormatJSON {
		return
	}
	_, _ = fmt.Fprintln(p.w, line)
}

func (p *printer) result(r report) error {
	if p.format == config.FormatJSON {
		doc := jsonReport{
			PredictionID: r.ID,
			Fighter1:     r.Fight.Fighter1,
			Fighter2:     r.Fight.Fighter2,
			EventDate:    r.Fight.EventDate,
			Model:        r.Model,
		}
		if r.Outcome != nil {
			prob := r.Outcome.Probability
			doc.Predicted = true
			doc.Winner = r.Outcome.Winner
			doc.Probability = &prob
		}
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
		return nil
	}

	var err error
	if r.Outcome == nil {
		_, err = fmt.Fprintf(p.w, "\n%s\n", NoPredictionMessage)
	} else {
		_, err = fmt.Fprintf(p.w, "\n---> Predicted Winner: %s (%s) <---\n", r.Outcome.Winner, r.Outcome.Percent())
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
