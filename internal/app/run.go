package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vk/phaselink/internal/builder"
	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/trajectory"
)

// Result is the outcome of checking one trajectory.
type Result struct {
	Trajectory string
	Report     *trajectory.Report
	Err        error
}

// FailedError reports the trajectories that did not pass setup. Each failure
// has already been printed by Run.
type FailedError struct {
	Failures []error
}

func (e *FailedError) Error() string {
	return errors.Join(e.Failures...).Error()
}

func (e *FailedError) Unwrap() []error {
	return e.Failures
}

// Run loads every trajectory under the configured paths, sets each one up
// and prints one line per trajectory in name order. It returns the joined
// failures as a *FailedError, or nil when every trajectory passed.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	results, err := a.Check(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.outW, "FAIL %s: %v\n", r.Trajectory, r.Err)
			errs = append(errs, r.Err)
			continue
		}
		fmt.Fprintf(a.outW, "ok   %s (%d phases, %d linkages)\n", r.Trajectory, r.Report.Phases, r.Report.Linkages)
	}

	a.logger.Debug("App.Run method finished.", "trajectories", len(results), "failed", len(errs))
	if len(errs) > 0 {
		return &FailedError{Failures: errs}
	}
	return nil
}

// Check loads and sets up every trajectory without printing anything. Load
// failures abort the run; per-trajectory failures are reported in the
// results, sorted by trajectory name.
func (a *App) Check(ctx context.Context) ([]Result, error) {
	ctx = a.withLogger(ctx)

	model, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(model.Trajectories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, def := range model.Trajectories {
		i, def := i, def
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := checkOne(gctx, def)
			results[i] = Result{Trajectory: def.Name, Report: report, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Trajectory < results[j].Trajectory })
	return results, nil
}

func checkOne(ctx context.Context, def *config.Trajectory) (*trajectory.Report, error) {
	ctx = ctxlog.With(ctx, "source", def.Source)
	traj, err := builder.Build(ctx, def)
	if err != nil {
		return nil, err
	}
	return traj.Setup(ctx)
}
