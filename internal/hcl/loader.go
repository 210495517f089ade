package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gptgrid/internal/config"
	"github.com/specialistvlad/gptgrid/internal/ctxlog"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/fsutil"
)

const extension = ".hcl"

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL pipeline loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every pipeline file found under paths and merges them in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &faults.ConfigurationError{Subject: "pipeline", Reason: fmt.Sprintf("no %s files found in %v", extension, paths)}
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	pipeline := &config.Pipeline{Files: files}
	var firstRun string

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		evalCtx := evalContext(filepath.Dir(file), environ())
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, s := range root.Steps {
			pipeline.Steps = append(pipeline.Steps, translateStep(s, evalCtx))
		}
		for _, r := range root.Runs {
			if firstRun != "" {
				return nil, &faults.ConfigurationError{
					Subject: "run block at " + location(r.Remain),
					Reason:  "only one run block is allowed, first declared at " + firstRun,
				}
			}
			run, err := translateRun(r)
			if err != nil {
				return nil, err
			}
			pipeline.Run = run
			firstRun = location(r.Remain)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "steps", len(pipeline.Steps), "has_run", pipeline.Run != nil)
	return pipeline, nil
}

func translateStep(s *stepBlock, evalCtx *hcl.EvalContext) *config.Step {
	step := &config.Step{
		Operator: s.Operator,
		Location: location(s.Body),
		Body:     &bodyDecoder{body: s.Body, evalCtx: evalCtx},
	}
	if s.NodeID != nil {
		step.NodeID = *s.NodeID
	}
	return step
}

func translateRun(r *runBlock) (*config.Run, error) {
	subject := "run block at " + location(r.Remain)
	if err := rejectExtra(r.Remain); err != nil {
		return nil, &faults.ConfigurationError{Subject: subject, Err: err}
	}
	run := &config.Run{
		Inputs:         r.Inputs,
		OutputFolder:   r.OutputFolder,
		Format:         r.Format,
		Suffix:         r.Suffix,
		SuppressStderr: r.SuppressStderr,
	}
	if r.DateOnly != nil {
		run.DateOnly = *r.DateOnly
	}
	if r.DateTimeOnly != nil {
		run.DateTimeOnly = *r.DateTimeOnly
	}
	if run.DateOnly && run.DateTimeOnly {
		return nil, &faults.ConfigurationError{Subject: subject, Reason: "date_only and date_time_only are mutually exclusive"}
	}
	if r.Prefix != nil {
		run.Prefix = *r.Prefix
	}
	if r.Timeout != nil {
		d, err := time.ParseDuration(*r.Timeout)
		if err != nil {
			return nil, &faults.ConfigurationError{Subject: subject, Reason: "invalid timeout", Err: err}
		}
		run.Timeout = d
	}
	return run, nil
}

// rejectExtra fails when a remain body holds anything the schema did not
// claim.
func rejectExtra(body hcl.Body) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return fmt.Errorf("unsupported arguments %v", names)
}

// location returns "file:line" of a block body.
func location(body hcl.Body) string {
	if body == nil {
		return "unknown"
	}
	rng := body.MissingItemRange()
	return fmt.Sprintf("%s:%d", rng.Filename, rng.Start.Line)
}

// findAllHCLFiles walks all given paths and returns every pipeline file found,
// directories in lexical order.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &faults.IOError{Op: "read pipeline", Path: path, Err: err}
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, extension)
		if err != nil {
			return nil, &faults.IOError{Op: "walk pipeline directory", Path: path, Err: err}
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
