package linkage

import "fmt"

// Resolver looks up the boundary spec of an endpoint.
type Resolver interface {
	Resolve(ep Endpoint) (BoundarySpec, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ep Endpoint) (BoundarySpec, error)

// Resolve calls f(ep).
func (f ResolverFunc) Resolve(ep Endpoint) (BoundarySpec, error) {
	return f(ep)
}

// Check accepts the request when at most one side is fixed.
func Check(traj string, req Request, a, b BoundarySpec) error {
	if a.IsFixed() && b.IsFixed() {
		return &Error{Trajectory: traj, A: req.A, B: req.B}
	}
	return nil
}

// Validate checks every request in order and stops at the first failure.
func Validate(traj string, reqs []Request, r Resolver) error {
	for _, req := range reqs {
		a, err := r.Resolve(req.A)
		if err != nil {
			return fmt.Errorf("trajectory %s: resolving %s: %w", traj, req.A, err)
		}
		b, err := r.Resolve(req.B)
		if err != nil {
			return fmt.Errorf("trajectory %s: resolving %s: %w", traj, req.B, err)
		}
		if err := Check(traj, req, a, b); err != nil {
			return err
		}
	}
	return nil
}
