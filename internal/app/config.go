package app

import "errors"

// Config holds what the entrypoint collected for one invocation. Empty
// override fields leave the settings file and environment in charge.
type Config struct {
	// PipelinePaths are .hcl files or directories.
	PipelinePaths []string
	// Inputs replace the inputs of the pipeline's run block when not empty.
	Inputs []string

	SettingsPath string
	EnvFiles     []string

	GPT          string
	LogLevel     string
	LogFormat    string
	OutputFolder string
	// Quiet drops the terminal reporter; logs are still written.
	Quiet bool
	// PrintGraph writes the graph document to the output and skips the batch.
	PrintGraph      bool
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.PipelinePaths) == 0 {
		return nil, errors.New("at least one pipeline path is required")
	}
	if cfg.HealthcheckPort < 0 {
		return nil, errors.New("healthcheck port must not be negative")
	}
	return &cfg, nil
}
