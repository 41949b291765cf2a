package app

import (
	"errors"
	"fmt"
	"time"
)

// Input formats accepted by Config.Format.
const (
	FormatAuto = "auto"
	FormatHCL  = "hcl"
	FormatYAML = "yaml"
)

// DefaultDebounce is how long watch mode waits for file events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths  []string // files or directories holding trajectory definitions
	Format string

	LogFormat   string
	LogLevel    string
	WorkerCount int

	Watch    bool
	Debounce time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one path is required")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatAuto
	case FormatAuto, FormatHCL, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'auto', 'hcl' or 'yaml'", cfg.Format)
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("invalid worker count %d: must be at least 1", cfg.WorkerCount)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return &cfg, nil
}
