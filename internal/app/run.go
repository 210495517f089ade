package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/gptgrid/internal/ctxlog"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/fetch"
	"github.com/specialistvlad/gptgrid/internal/gpt"
	"github.com/specialistvlad/gptgrid/internal/graph"
	"github.com/specialistvlad/gptgrid/internal/report"
)

// Run loads the pipeline, builds its graph and processes every input. The
// summary is returned even when some inputs failed; the error is only set for
// failures that stopped the batch. With PrintGraph the graph is written to the
// output and both return values are nil.
func (a *App) Run(ctx context.Context) (*gpt.Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	pipeline, err := a.loader.Load(ctx, a.config.PipelinePaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	g, err := pipeline.Build(ctx, a.registry, graph.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	a.logger.Debug("Graph built.", "nodes", g.Len(), "operators", g.Operators())

	if a.config.PrintGraph {
		doc, err := g.Serialize()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize graph: %w", err)
		}
		_, err = fmt.Fprintln(a.outW, doc)
		return nil, err
	}

	opts := pipeline.Run.Options()
	if a.config.OutputFolder != "" {
		opts.OutputFolder = a.config.OutputFolder
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	inputs := a.config.Inputs
	if len(inputs) == 0 && pipeline.Run != nil {
		inputs = pipeline.Run.Inputs
	}
	if len(inputs) == 0 {
		return nil, &faults.ConfigurationError{Subject: "inputs", Reason: "none given on the command line or in the run block"}
	}

	engineOpts := []gpt.Option{
		gpt.WithReporter(a.reporter()),
		gpt.WithStderr(a.errW),
		gpt.WithWrapWidth(a.settings.Report.WrapWidth),
		gpt.WithLogger(a.logger),
	}
	if needsObjectStore(inputs) {
		s3, err := fetch.NewS3(fetch.S3Config{
			Endpoint:        a.settings.Storage.Endpoint,
			AccessKeyID:     a.settings.Storage.AccessKeyID,
			SecretAccessKey: a.settings.Storage.SecretAccessKey,
			Region:          a.settings.Storage.Region,
			Secure:          a.settings.Storage.Secure,
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to configure object storage: %w", err)
		}
		engineOpts = append(engineOpts, gpt.WithFetcher(s3))
	}

	engine, err := gpt.New(ctx, a.settings.GPT, engineOpts...)
	if err != nil {
		return nil, err
	}

	if a.config.HealthcheckPort > 0 {
		srv, err := a.startHealthcheckServer(a.config.HealthcheckPort)
		if err != nil {
			return nil, err
		}
		defer a.stopHealthcheckServer(srv)
	}

	a.progress.start(len(inputs))
	defer a.progress.finish()

	a.logger.Info("🚀 Starting batch.", "inputs", len(inputs), "nodes", g.Len(), "output_folder", opts.OutputFolder, "format", opts.Format)
	summary, err := engine.Run(ctx, g, inputs, opts)
	if err != nil {
		return summary, fmt.Errorf("batch aborted: %w", err)
	}
	a.logger.Info("🏁 Batch finished.", "succeeded", summary.Succeeded(), "failed", summary.Failed())

	a.logger.Debug("App.Run method finished.")
	return summary, nil
}

// reporter drops the terminal view when quiet. Progress lines are also logged
// when quiet or when logs are meant for machines.
func (a *App) reporter() report.Reporter {
	reporters := report.Multi{a.progress}
	if !a.config.Quiet {
		reporters = append(reporters, report.NewTerminal(a.outW))
	}
	if a.config.Quiet || a.settings.Log.Format == "json" {
		reporters = append(reporters, report.NewLog(a.logger))
	}
	return reporters
}

func needsObjectStore(inputs []string) bool {
	for _, in := range inputs {
		if strings.HasPrefix(in, fetch.S3Scheme) {
			return true
		}
	}
	return false
}
