package trajectory

import (
	"fmt"

	"github.com/vk/phaselink/internal/linkage"
)

// LinkageConstraint declares a single linkage between two endpoints.
// Zero values are filled in as VarB=VarA, LocA=final and LocB=initial.
type LinkageConstraint struct {
	PhaseA    string
	PhaseB    string
	VarA      string
	VarB      string
	LocA      linkage.Location
	LocB      linkage.Location
	Connected bool
}

// Trajectory is an ordered collection of phases and the linkages between
// them.
type Trajectory struct {
	Name string

	phases   []*Phase
	byName   map[string]*Phase
	linkages []linkage.Request
}

// New creates an empty trajectory.
func New(name string) *Trajectory {
	return &Trajectory{
		Name:   name,
		byName: make(map[string]*Phase),
	}
}

// AddPhase appends a phase. Phase names must be unique within a trajectory.
func (t *Trajectory) AddPhase(p *Phase) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("trajectory %s: %w", t.Name, err)
	}
	if _, exists := t.byName[p.Name]; exists {
		return fmt.Errorf("trajectory %s: phase %q: %w", t.Name, p.Name, ErrDuplicatePhase)
	}
	t.phases = append(t.phases, p)
	t.byName[p.Name] = p
	return nil
}

// Phases returns the phases in insertion order.
func (t *Trajectory) Phases() []*Phase {
	return append([]*Phase(nil), t.phases...)
}

// Phase returns the named phase.
func (t *Trajectory) Phase(name string) (*Phase, bool) {
	p, ok := t.byName[name]
	return p, ok
}

// Linkages returns the declared linkage requests in declaration order.
func (t *Trajectory) Linkages() []linkage.Request {
	return append([]linkage.Request(nil), t.linkages...)
}

// LinkPhases links every listed variable across each consecutive pair of
// phases, final value to initial value.
func (t *Trajectory) LinkPhases(phases, vars []string, connected bool) error {
	if len(phases) < 2 {
		return fmt.Errorf("trajectory %s: link_phases needs at least two phases, got %d: %w", t.Name, len(phases), ErrInvalidLinkage)
	}
	if len(vars) == 0 {
		return fmt.Errorf("trajectory %s: link_phases for %v lists no variables: %w", t.Name, phases, ErrInvalidLinkage)
	}
	t.linkages = append(t.linkages, linkage.ExpandLinkPhases(phases, vars, connected)...)
	return nil
}

// AddLinkageConstraint declares a single linkage.
func (t *Trajectory) AddLinkageConstraint(c LinkageConstraint) error {
	if c.PhaseA == "" || c.PhaseB == "" || c.VarA == "" {
		return fmt.Errorf("trajectory %s: linkage constraint needs phase_a, phase_b and var_a: %w", t.Name, ErrInvalidLinkage)
	}
	if c.VarB == "" {
		c.VarB = c.VarA
	}
	if c.LocA == "" {
		c.LocA = linkage.Final
	}
	if c.LocB == "" {
		c.LocB = linkage.Initial
	}
	for _, loc := range []linkage.Location{c.LocA, c.LocB} {
		if _, err := linkage.ParseLocation(string(loc)); err != nil {
			return fmt.Errorf("trajectory %s: %w", t.Name, err)
		}
	}
	t.linkages = append(t.linkages, linkage.Request{
		A:         linkage.Endpoint{Phase: c.PhaseA, Var: c.VarA, Loc: c.LocA},
		B:         linkage.Endpoint{Phase: c.PhaseB, Var: c.VarB, Loc: c.LocB},
		Connected: c.Connected,
	})
	return nil
}

// Resolve implements linkage.Resolver over the trajectory's phases.
func (t *Trajectory) Resolve(ep linkage.Endpoint) (linkage.BoundarySpec, error) {
	p, ok := t.byName[ep.Phase]
	if !ok {
		return linkage.BoundarySpec{}, fmt.Errorf("phase %q: %w", ep.Phase, ErrUnknownPhase)
	}
	return p.Spec(ep.Var, ep.Loc)
}
