// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Human-readable console output is used
// unless structured is set. Every entry carries the run id.
func New(w io.Writer, level zerolog.Level, structured, noColor bool) (zerolog.Logger, string) {
	zerolog.TimeFieldFormat = time.RFC3339
	out := w
	if !structured {
		out = zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}
	}
	runID := uuid.NewString()
	return zerolog.New(out).Level(level).With().Timestamp().Str("run_id", runID).Logger(), runID
}
