package gpt

import (
	"errors"
	"fmt"
	"time"
)

// State is where an input is in its processing.
type State int

const (
	Naming State = iota
	Staging
	Normalizing
	Serializing
	Invoking
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Naming:
		return "naming"
	case Staging:
		return "staging"
	case Normalizing:
		return "normalizing"
	case Serializing:
		return "serializing"
	case Invoking:
		return "invoking"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Outcome is the result of processing one input.
type Outcome struct {
	RunID string
	// Input is the path as given.
	Input string
	// Effective is what gpt was given with -Ssource, after staging and
	// normalization.
	Effective string
	Output    string
	// OutputSize is the size in bytes of the written output file, set on
	// success. Formats that write a header plus a data directory (BEAM-DIMAP,
	// ENVI) report the header only.
	OutputSize uint64
	State      State
	// FailedIn is the state that failed; only meaningful when State is Failed.
	FailedIn State
	Err      error
	Elapsed  time.Duration
}

// OK reports whether the input was processed successfully.
func (o Outcome) OK() bool {
	return o.State == Succeeded
}

// advance moves the outcome forward. Moving backwards or out of a terminal
// state is a programming error.
func (o *Outcome) advance(next State) {
	if o.State.Terminal() || next < o.State {
		panic(fmt.Sprintf("gpt: invalid transition %s -> %s", o.State, next))
	}
	o.State = next
}

// fail ends the outcome in Failed, remembering where it failed.
func (o *Outcome) fail(err error) {
	o.FailedIn = o.State
	o.advance(Failed)
	o.Err = err
}

// Summary collects the outcomes of a batch in input order.
type Summary struct {
	Outcomes []Outcome
}

func (s *Summary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

func (s *Summary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// Err joins the errors of every failed input, or returns nil.
func (s *Summary) Err() error {
	var errs []error
	for _, o := range s.Outcomes {
		if !o.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", o.Input, o.Err))
		}
	}
	return errors.Join(errs...)
}
