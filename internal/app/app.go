package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/gptgrid/internal/config"
	"github.com/specialistvlad/gptgrid/internal/ctxlog"
	"github.com/specialistvlad/gptgrid/internal/registry"
	"github.com/specialistvlad/gptgrid/internal/settings"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	config   *Config
	settings *settings.Settings
	logger   *slog.Logger
	registry *registry.Registry
	loader   config.Loader
	progress *progress
}

// NewApp builds an App: settings are layered (defaults, file, environment,
// then the overrides in cfg), the logger writes to errW and the terminal
// reporter to outW. A registry that fails validation is a programming error
// and panics.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	s, err := settings.Load(cfg.SettingsPath, cfg.EnvFiles, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	applyOverrides(s, cfg)
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(s.Log.Level, s.Log.Format, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.", "level", s.Log.Level, "format", s.Log.Format)

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New().Use(modules...)
	logger.Debug("All operator modules registered.", "count", len(modules), "operators", len(reg.Names()))
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}

	return &App{
		outW:     outW,
		errW:     errW,
		config:   cfg,
		settings: s,
		logger:   logger,
		registry: reg,
		loader:   loader,
		progress: &progress{},
	}, nil
}

func applyOverrides(s *settings.Settings, cfg *Config) {
	if cfg.GPT != "" {
		s.GPT = cfg.GPT
	}
	if cfg.LogLevel != "" {
		s.Log.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		s.Log.Format = cfg.LogFormat
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Settings returns the effective settings.
func (a *App) Settings() *settings.Settings {
	return a.settings
}
