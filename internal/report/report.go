package report

import "time"

// Event describes one input of a run.
type Event struct {
	// RunID identifies the invocation; it also names the transient directory.
	RunID string
	// Input is the path as given by the caller, before staging or normalization.
	Input string
	// Output is the derived output path. It is empty when naming failed.
	Output string
	// InPlace allows the pending line to be rewritten. The engine sets it only
	// when gpt's stderr is not streamed to the same terminal.
	InPlace bool
	// Elapsed is set on Succeeded and Failed.
	Elapsed time.Duration
	// Size is the output size in bytes, set on Succeeded when known.
	Size uint64
}

// label is what a status line shows for the event.
func (e Event) label() string {
	if e.Output != "" {
		return e.Output
	}
	return e.Input
}

// Reporter receives progress of a run.
type Reporter interface {
	Pending(Event)
	Succeeded(Event)
	Failed(Event, error)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Pending(Event)       {}
func (Nop) Succeeded(Event)     {}
func (Nop) Failed(Event, error) {}

// Multi forwards every event to each reporter in order.
type Multi []Reporter

func (m Multi) Pending(e Event) {
	for _, r := range m {
		r.Pending(e)
	}
}

func (m Multi) Succeeded(e Event) {
	for _, r := range m {
		r.Succeeded(e)
	}
}

func (m Multi) Failed(e Event, err error) {
	for _, r := range m {
		r.Failed(e, err)
	}
}
