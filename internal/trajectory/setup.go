package trajectory

import (
	"context"
	"fmt"

	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/dag"
	"github.com/vk/phaselink/internal/linkage"
)

// Report summarizes a successful setup.
type Report struct {
	Trajectory  string
	Phases      int
	Linkages    int
	Connections int
}

// Setup runs the setup-time checks over the declared linkages, in
// declaration order, and stops at the first problem. A *linkage.Error is
// returned unwrapped so callers see its exact message.
func (t *Trajectory) Setup(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx).With("trajectory", t.Name)
	logger.Debug("Trajectory setup started.", "phases", len(t.phases), "linkages", len(t.linkages))

	if err := t.checkReferences(); err != nil {
		return nil, err
	}
	if err := t.checkDuplicates(); err != nil {
		return nil, err
	}
	logger.Debug("Linkage references resolved.")

	if err := linkage.Validate(t.Name, t.linkages, t); err != nil {
		logger.Debug("Linkage validation failed.", "error", err)
		return nil, err
	}
	logger.Debug("Linkage validation passed.")

	connections, err := t.checkConnections()
	if err != nil {
		return nil, err
	}
	logger.Debug("Connection graph is acyclic.", "connections", connections)

	return &Report{
		Trajectory:  t.Name,
		Phases:      len(t.phases),
		Linkages:    len(t.linkages),
		Connections: connections,
	}, nil
}

func (t *Trajectory) checkReferences() error {
	for _, req := range t.linkages {
		for _, ep := range []linkage.Endpoint{req.A, req.B} {
			if _, ok := t.byName[ep.Phase]; !ok {
				return fmt.Errorf("trajectory %s: linkage %s references phase %q: %w", t.Name, req.Key(), ep.Phase, ErrUnknownPhase)
			}
		}
	}
	return nil
}

func (t *Trajectory) checkDuplicates() error {
	seen := make(map[string]struct{}, len(t.linkages))
	for _, req := range t.linkages {
		key := req.Key()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("trajectory %s: %s is linked more than once: %w", t.Name, key, ErrDuplicateLinkage)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// checkConnections verifies each connected target has one source and that
// phases do not feed each other in a loop.
func (t *Trajectory) checkConnections() (int, error) {
	sources := make(map[linkage.Endpoint]linkage.Endpoint)
	g := dag.New()
	for _, p := range t.phases {
		g.AddNode(p.Name)
	}

	count := 0
	for _, req := range t.linkages {
		if !req.Connected {
			continue
		}
		if prev, ok := sources[req.B]; ok {
			return 0, fmt.Errorf("trajectory %s: %s is already connected to %s, cannot also connect %s: %w", t.Name, req.B, prev, req.A, ErrDuplicateConnection)
		}
		sources[req.B] = req.A
		if err := g.AddEdge(req.A.Phase, req.B.Phase); err != nil {
			return 0, fmt.Errorf("trajectory %s: %w: %v", t.Name, ErrConnectionCycle, err)
		}
		count++
	}

	if err := g.DetectCycles(); err != nil {
		return 0, fmt.Errorf("trajectory %s: %w: %v", t.Name, ErrConnectionCycle, err)
	}
	return count, nil
}
