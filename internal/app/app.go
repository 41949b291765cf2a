package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/hcl"
	"github.com/vk/phaselink/internal/yaml"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW. When no loaders are given they are chosen from
// cfg.Format.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = loadersFor(cfg.Format)
	}
	logger.Debug("Loaders selected.", "format", cfg.Format, "count", len(loaders))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
	}
}

func loadersFor(format string) []config.Loader {
	switch format {
	case FormatHCL:
		return []config.Loader{hcl.NewLoader()}
	case FormatYAML:
		return []config.Loader{yaml.NewLoader()}
	default:
		return []config.Loader{hcl.NewLoader(), yaml.NewLoader()}
	}
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
