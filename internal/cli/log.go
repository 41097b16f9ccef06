// Package cli implements the doctree command-line interface.
//
// # Commands
//
//   - graph: build the document graph of a corpus and write it as DOT, SVG,
//     PNG or JSON, optionally rebuilding whenever a note changes
//   - check: validate a corpus and print a summary
//   - serve: serve graphs over HTTP
//   - completion: generate shell completion scripts
//
// Settings come from flags first, then from doctree.toml at the corpus root
// (or the file named by --config), then from built-in defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every pipeline stage and HTTP request.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote graph.svg (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
