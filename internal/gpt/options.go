package gpt

import (
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/gptgrid/internal/faults"
)

const (
	DefaultOutputFolder = "proc"
	DefaultFormat       = "BEAM-DIMAP"
)

// RunOptions controls where outputs go and how they are named.
type RunOptions struct {
	// OutputFolder is created when missing.
	OutputFolder string
	// Format is passed to gpt with -f and picks the output extension.
	Format string
	// DateOnly names outputs after the acquisition date, YYYY-MM-DD.
	DateOnly bool
	// DateTimeOnly names outputs after the acquisition time, YYYY-MM-DDThhmmss.
	DateTimeOnly bool
	// Prefix is prepended to every output name.
	Prefix string
	// Suffix replaces the graph suffix when not nil.
	Suffix *string
	// SuppressStderr captures gpt's stderr instead of streaming it. Only
	// captured output yields a readable error message.
	SuppressStderr bool
	// Timeout bounds one gpt invocation; 0 waits forever.
	Timeout time.Duration
}

// NewRunOptions returns the defaults: BEAM-DIMAP into ./proc, stderr captured.
func NewRunOptions() RunOptions {
	return RunOptions{
		OutputFolder:   DefaultOutputFolder,
		Format:         DefaultFormat,
		SuppressStderr: true,
	}
}

// Validate rejects contradictory or unusable options.
func (o RunOptions) Validate() error {
	invalid := func(reason string) error {
		return &faults.ConfigurationError{Subject: "run options", Reason: reason}
	}
	switch {
	case o.DateOnly && o.DateTimeOnly:
		return invalid("date_only and date_time_only are mutually exclusive")
	case o.OutputFolder == "":
		return invalid("output folder is empty")
	case o.Format == "":
		return invalid("format is empty")
	case o.Timeout < 0:
		return invalid(fmt.Sprintf("negative timeout %s", o.Timeout))
	case strings.ContainsAny(o.Prefix, `/\`):
		return invalid(fmt.Sprintf("prefix %q contains a path separator", o.Prefix))
	case o.Suffix != nil && strings.ContainsAny(*o.Suffix, `/\`):
		return invalid(fmt.Sprintf("suffix %q contains a path separator", *o.Suffix))
	}
	return nil
}

// policy names the active naming policy for errors and logs.
func (o RunOptions) policy() string {
	switch {
	case o.DateOnly:
		return "date_only"
	case o.DateTimeOnly:
		return "date_time_only"
	default:
		return "default"
	}
}
