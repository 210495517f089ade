package gpt

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/fetch"
	"github.com/specialistvlad/gptgrid/internal/report"
)

// Banner is the start of `gpt -h` output that identifies the tool.
const Banner = "Usage:\n  gpt <op>|<graph-file> [options]"

// DefaultWrapWidth is the column at which gpt error messages are wrapped.
const DefaultWrapWidth uint = 80

// Engine runs graphs with one verified gpt executable. It is not mutated after
// New returns.
type Engine struct {
	path      string
	reporter  report.Reporter
	fetchers  []fetch.Fetcher
	stderr    io.Writer
	tempDir   string
	wrapWidth uint
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter sets where progress goes. The default discards it.
func WithReporter(r report.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithFetcher adds a fetcher for remote inputs. Fetchers are tried in the
// order they were added.
func WithFetcher(f fetch.Fetcher) Option {
	return func(e *Engine) { e.fetchers = append(e.fetchers, f) }
}

// WithStderr sets where gpt's output is streamed when it is not suppressed.
func WithStderr(w io.Writer) Option {
	return func(e *Engine) { e.stderr = w }
}

// WithTempDir sets the parent of the per-input transient directories.
func WithTempDir(dir string) Option {
	return func(e *Engine) { e.tempDir = dir }
}

// WithWrapWidth sets the column at which extracted error messages wrap.
func WithWrapWidth(width uint) Option {
	return func(e *Engine) { e.wrapWidth = width }
}

// WithLogger sets the logger for probe, staging and invocation details.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New verifies that path is gpt and returns an Engine bound to it. A missing
// binary, a failing probe or an unexpected banner yield a
// *faults.ToolNotFoundError.
func New(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		reporter:  report.Nop{},
		stderr:    os.Stderr,
		wrapWidth: DefaultWrapWidth,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, &faults.ToolNotFoundError{Path: path, Err: err}
	}

	out, err := exec.CommandContext(ctx, resolved, "-h").Output()
	if err != nil {
		return nil, &faults.ToolNotFoundError{Path: path, Err: err}
	}
	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(out, []byte(Banner)) {
		return nil, &faults.ToolNotFoundError{Path: path}
	}

	e.path = resolved
	e.logger.Debug("gpt verified.", "path", resolved)
	return e, nil
}

// Path returns the resolved path of the gpt executable.
func (e *Engine) Path() string {
	return e.path
}
