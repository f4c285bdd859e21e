package ui

import (
	"github.com/rs/zerolog"

	"newsdeck/internal/domain"
	"newsdeck/internal/logging"
)

// LogRunner is the terminal's fragment runner. Scripts cannot execute in a
// terminal, so each re-created fragment is recorded for the log instead.
type LogRunner struct {
	log  zerolog.Logger
	runs int
}

// NewLogRunner creates a runner logging under the "fragments" component
func NewLogRunner() *LogRunner {
	return &LogRunner{log: logging.NewLogger("fragments")}
}

// Run implements pager.FragmentRunner
func (r *LogRunner) Run(page int, fragments []domain.Fragment) {
	r.runs++
	for i, f := range fragments {
		r.log.Debug().
			Int("page", page).
			Int("index", i).
			Str("type", f.Type).
			Str("src", f.Src).
			Int("bytes", len(f.Body)).
			Msg("fragment mounted")
	}
}

// Runs counts Run calls
func (r *LogRunner) Runs() int { return r.runs }
