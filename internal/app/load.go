package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
)

// ErrNoTrajectories is returned when the configured paths define nothing to check.
var ErrNoTrajectories = errors.New("no trajectories found")

// load runs every loader over the configured paths and merges the results.
func (a *App) load(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}
	for _, loader := range a.loaders {
		m, err := loader.Load(ctx, a.config.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Debug("Loader finished.", "extensions", loader.Extensions(), "trajectories", len(m.Trajectories))
	}

	if len(model.Trajectories) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoTrajectories, a.config.Paths)
	}
	return model, nil
}
