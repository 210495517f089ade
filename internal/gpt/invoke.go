package gpt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mitchellh/go-wordwrap"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/graph"
)

const errorMarker = "Error: "

// waitDelay bounds how long Wait keeps reading pipes after gpt was killed;
// gpt's JVM children may hold them open.
const waitDelay = 10 * time.Second

// invocation is one gpt call.
type invocation struct {
	graphFile string
	input     string
	sources   []graph.Source
	output    string
	format    string
}

// args builds the gpt command line.
func (inv invocation) args() []string {
	args := []string{inv.graphFile, "-S" + graph.SourcePlaceholder + "=" + inv.input}
	for _, s := range inv.sources {
		args = append(args, "-S"+s.Name+"="+s.Value)
	}
	return append(args, "-t", inv.output, "-f", inv.format)
}

// invoke runs gpt and turns a non-zero exit into a *faults.ToolExecutionError.
func (e *Engine) invoke(ctx context.Context, inv invocation, opts RunOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.path, inv.args()...)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	if opts.SuppressStderr {
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = e.stderr
		cmd.Stderr = e.stderr
	}

	e.logger.Debug("Calling gpt.", "args", cmd.Args)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && opts.Timeout > 0 {
			return fmt.Errorf("gpt did not finish within %s: %w", opts.Timeout, ctxErr)
		}
		return fmt.Errorf("gpt interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("starting gpt: %w", err)
	}

	execErr := &faults.ToolExecutionError{Input: inv.input, ExitCode: exitErr.ExitCode()}
	if opts.SuppressStderr {
		execErr.Stderr = stderr.Bytes()
		execErr.Message = errorMessage(execErr.Stderr, e.wrapWidth)
	}
	return execErr
}

// errorMessage finds the first "Error: " line of gpt's stderr and returns its
// text wrapped at width. It returns "" when there is none.
func errorMessage(stderr []byte, width uint) string {
	for _, line := range strings.Split(string(stderr), "\n") {
		msg, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), errorMarker)
		if !ok {
			continue
		}
		msg = strings.TrimSpace(msg)
		if width == 0 {
			return msg
		}
		return wordwrap.WrapString(msg, width)
	}
	return ""
}
