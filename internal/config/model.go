package config

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/gptgrid/internal/ctxlog"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/gpt"
	"github.com/specialistvlad/gptgrid/internal/graph"
	"github.com/specialistvlad/gptgrid/internal/registry"
)

// Pipeline is a loaded pipeline.
type Pipeline struct {
	// Steps in graph order.
	Steps []*Step
	// Run is nil when no file declared a run block.
	Run *Run
	// Files lists the files the pipeline was read from.
	Files []string
}

// Step is one step block.
type Step struct {
	Operator string
	// NodeID is empty when the graph should generate one.
	NodeID string
	// Location is "file:line" for messages.
	Location string
	Body     BodyDecoder
}

// Run holds the run block. Nil pointers keep the engine defaults.
type Run struct {
	Inputs         []string
	OutputFolder   *string
	Format         *string
	DateOnly       bool
	DateTimeOnly   bool
	Prefix         string
	Suffix         *string
	SuppressStderr *bool
	Timeout        time.Duration
}

// Options merges the run block over the engine defaults.
func (r *Run) Options() gpt.RunOptions {
	opts := gpt.NewRunOptions()
	if r == nil {
		return opts
	}
	if r.OutputFolder != nil {
		opts.OutputFolder = *r.OutputFolder
	}
	if r.Format != nil {
		opts.Format = *r.Format
	}
	if r.SuppressStderr != nil {
		opts.SuppressStderr = *r.SuppressStderr
	}
	opts.DateOnly = r.DateOnly
	opts.DateTimeOnly = r.DateTimeOnly
	opts.Prefix = r.Prefix
	opts.Suffix = r.Suffix
	opts.Timeout = r.Timeout
	return opts
}

// Build decodes every step into a fresh operator from reg and adds it to a
// new graph in order.
func (p *Pipeline) Build(ctx context.Context, reg *registry.Registry, opts ...graph.Option) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := graph.New(opts...)

	for _, s := range p.Steps {
		st, err := reg.New(s.Operator)
		if err != nil {
			return nil, &faults.ConfigurationError{Subject: "step at " + s.Location, Err: err}
		}
		if err := s.Body.Decode(st); err != nil {
			return nil, &faults.ConfigurationError{Subject: fmt.Sprintf("step %q at %s", s.Operator, s.Location), Err: err}
		}

		var ids []string
		if s.NodeID != "" {
			ids = append(ids, s.NodeID)
		}
		if err := g.AddStep(st, ids...); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Location, err)
		}
	}

	logger.Debug("Graph built from pipeline.", "nodes", g.Len(), "node_ids", g.NodeIDs(), "suffix", g.Suffix())
	return g, nil
}
