package report

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Log writes one structured record per event.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Pending(e Event) {
	l.logger.Info("Processing input.", "run_id", e.RunID, "input", e.Input, "output", e.Output)
}

func (l *Log) Succeeded(e Event) {
	l.logger.Info("Input processed.", "run_id", e.RunID, "input", e.Input, "output", e.Output, "elapsed", e.Elapsed, "size", humanize.Bytes(e.Size))
}

func (l *Log) Failed(e Event, err error) {
	l.logger.Error("Input failed.", "run_id", e.RunID, "input", e.Input, "output", e.Output, "elapsed", e.Elapsed, "error", err)
}
