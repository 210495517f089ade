package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gptgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gptgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gptgrid - Batch processing of satellite products through SNAP gpt graphs.

Usage:
  gptgrid [options] PIPELINE_PATH [INPUT...]
  gptgrid [options] -p PIPELINE_PATH [-p PIPELINE_PATH...] [INPUT...]

Arguments:
  PIPELINE_PATH
    Path to a single .hcl file or a directory containing .hcl files.
  INPUT
    Local product paths or s3:// urls. They replace the inputs of the
    pipeline's run block.

Options:
`)
		flagSet.PrintDefaults()
	}

	var pipelines, envFiles stringList
	flagSet.Var(&pipelines, "p", "Path to a pipeline file or directory. May be repeated.")
	flagSet.Var(&envFiles, "env-file", "Dotenv file to read settings from. May be repeated. Defaults to .env when present.")
	settingsFlag := flagSet.String("config", "", "Path to a YAML settings file.")
	gptFlag := flagSet.String("gpt", "", "Path or name of the gpt executable. Overrides settings.")
	outputFlag := flagSet.String("output", "", "Output folder. Overrides the run block.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and progress server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	quietFlag := flagSet.Bool("quiet", false, "Do not print per-input progress lines; log them instead.")
	printGraphFlag := flagSet.Bool("print-graph", false, "Print the graph document and exit without processing inputs.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	rest := flagSet.Args()
	paths := []string(pipelines)
	if len(paths) == 0 && len(rest) > 0 {
		paths, rest = rest[:1], rest[1:]
	}
	slog.Debug("Pipeline paths determined.", "paths", paths, "inputs", len(rest))

	if len(paths) == 0 {
		slog.Debug("No pipeline path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PipelinePaths:   paths,
		Inputs:          rest,
		SettingsPath:    *settingsFlag,
		EnvFiles:        envFiles,
		GPT:             *gptFlag,
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		OutputFolder:    *outputFlag,
		Quiet:           *quietFlag,
		PrintGraph:      *printGraphFlag,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
