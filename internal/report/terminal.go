package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
)

const (
	glyphPending = "⏳"
	glyphOK      = "✔"
	glyphFailed  = "✘"

	// clearLine returns the cursor to column 0 and erases the line.
	clearLine = "\r\033[K"
)

// Terminal renders one status line per input.
type Terminal struct {
	w   io.Writer
	tty bool
	// open is true while a pending line has been written without a newline.
	open bool
}

// NewTerminal returns a reporter writing to w. In-place updates and colour
// are enabled only when w is a terminal.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, tty: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) Pending(e Event) {
	t.finish()
	if e.InPlace && t.tty {
		fmt.Fprintf(t.w, "%s %s", glyphPending, e.label())
		t.open = true
		return
	}
	fmt.Fprintf(t.w, "%s %s\n", glyphPending, e.label())
}

func (t *Terminal) Succeeded(e Event) {
	if t.open {
		fmt.Fprint(t.w, clearLine)
		t.open = false
	}
	if e.Size > 0 {
		fmt.Fprintf(t.w, "%s %s (%s)\n", t.paint(color.FgGreen, glyphOK), e.label(), humanize.Bytes(e.Size))
		return
	}
	fmt.Fprintf(t.w, "%s %s\n", t.paint(color.FgGreen, glyphOK), e.label())
}

// Failed never rewrites anything: the pending line is terminated and the
// failure is appended below it.
func (t *Terminal) Failed(e Event, err error) {
	t.finish()
	fmt.Fprintf(t.w, "%s %s\n", t.paint(color.FgRed, glyphFailed), e.label())
	if err == nil {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		fmt.Fprintf(t.w, "    %s\n", line)
	}
}

// finish terminates a pending line left open.
func (t *Terminal) finish() {
	if t.open {
		fmt.Fprintln(t.w)
		t.open = false
	}
}

func (t *Terminal) paint(c color.Color, s string) string {
	if !t.tty {
		return s
	}
	return c.Render(s)
}
