package gpt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/fetch"
	"github.com/specialistvlad/gptgrid/internal/graph"
	"github.com/specialistvlad/gptgrid/internal/report"
)

// graphFileName is the name of the serialized graph inside a transient dir.
const graphFileName = "graph.xml"

// Run processes every input in order. The returned error is set only for
// problems that stop the whole batch; per-input failures are in the Summary.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, inputs []string, opts RunOptions) (*Summary, error) {
	summary := &Summary{Outcomes: make([]Outcome, 0, len(inputs))}
	if err := e.prepare(g, opts); err != nil {
		return summary, err
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		out, err := e.process(ctx, g, input, opts)
		summary.Outcomes = append(summary.Outcomes, out)
		if err != nil {
			return summary, err
		}
	}

	e.logger.Info("Batch finished.", "inputs", len(inputs), "succeeded", summary.Succeeded(), "failed", summary.Failed())
	return summary, nil
}

// RunOne processes a single input.
func (e *Engine) RunOne(ctx context.Context, g *graph.Graph, input string, opts RunOptions) (Outcome, error) {
	if err := e.prepare(g, opts); err != nil {
		return Outcome{Input: input}, err
	}
	return e.process(ctx, g, input, opts)
}

// prepare performs the checks shared by every input of a call.
func (e *Engine) prepare(g *graph.Graph, opts RunOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if g == nil || g.Len() == 0 {
		return &faults.ConfigurationError{Subject: "graph", Reason: "graph has no steps"}
	}
	if err := os.MkdirAll(opts.OutputFolder, 0o755); err != nil {
		return &faults.IOError{Op: "create output folder", Path: opts.OutputFolder, Err: err}
	}
	return nil
}

// process runs one input through the state machine. The error return is
// reserved for transient directory failures; everything else lands in the
// Outcome.
func (e *Engine) process(ctx context.Context, g *graph.Graph, input string, opts RunOptions) (out Outcome, err error) {
	started := time.Now()
	out = Outcome{RunID: uuid.NewString(), Input: input, State: Naming}
	logger := e.logger.With("run_id", out.RunID, "input", input)
	ev := report.Event{RunID: out.RunID, Input: input, InPlace: opts.SuppressStderr}

	finish := func(cause error) {
		out.Elapsed = time.Since(started)
		ev.Output, ev.Elapsed = out.Output, out.Elapsed
		if cause != nil {
			out.fail(cause)
			logger.Debug("Input failed.", "state", out.FailedIn, "error", cause)
			e.reporter.Failed(ev, cause)
			return
		}
		out.advance(Succeeded)
		if info, statErr := os.Stat(out.Output); statErr == nil {
			out.OutputSize = uint64(info.Size())
			ev.Size = out.OutputSize
		}
		logger.Debug("Input processed.", "output", out.Output, "elapsed", out.Elapsed, "size", humanize.Bytes(out.OutputSize))
		e.reporter.Succeeded(ev)
	}

	output, nameErr := OutputPath(input, g.Suffix(), opts)
	out.Output = output
	ev.Output = output
	e.reporter.Pending(ev)
	if nameErr != nil {
		finish(nameErr)
		return out, nil
	}

	tmp, err := os.MkdirTemp(e.tempDir, "gptgrid-"+out.RunID+"-")
	if err != nil {
		err = &faults.IOError{Op: "create transient dir", Path: e.tempDir, Err: err}
		finish(err)
		return out, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmp); rmErr != nil && err == nil {
			err = &faults.IOError{Op: "remove transient dir", Path: tmp, Err: rmErr}
		}
	}()

	effective := input
	if f := fetch.Find(e.fetchers, input); f != nil {
		out.advance(Staging)
		staged, fetchErr := f.Fetch(ctx, input, tmp)
		if fetchErr != nil {
			finish(fetchErr)
			return out, nil
		}
		logger.Debug("Input staged.", "path", staged)
		effective = staged
	}

	out.advance(Normalizing)
	effective, err = normalize(effective, tmp, logger)
	if err != nil {
		finish(err)
		return out, nil
	}
	out.Effective = effective

	out.advance(Serializing)
	graphFile := filepath.Join(tmp, graphFileName)
	if err = g.Save(graphFile); err != nil {
		finish(err)
		return out, nil
	}

	out.advance(Invoking)
	err = e.invoke(ctx, invocation{
		graphFile: graphFile,
		input:     effective,
		sources:   g.AdditionalSources(),
		output:    output,
		format:    opts.Format,
	}, opts)
	finish(err)
	return out, nil
}
