package trajectory

import (
	"fmt"

	"github.com/vk/phaselink/internal/linkage"
)

// DefaultTimeName is the variable name used to link phase times.
const DefaultTimeName = "time"

// Range is a closed [lower, upper] interval.
type Range [2]float64

// TimeOptions describes how a phase's time span is determined.
type TimeOptions struct {
	Name           string
	FixInitial     bool
	FixDuration    bool
	InitialBounds  *Range
	DurationBounds *Range
	Units          string
}

// StateOptions describes a state variable and its boundary treatment.
type StateOptions struct {
	Name          string
	FixInitial    bool
	FixFinal      bool
	InitialBounds *Range
	FinalBounds   *Range
	Units         string
	RateSource    string
}

// ControlOptions describes a control. A control with Opt unset is not a
// design variable, so all of its values are fixed.
type ControlOptions struct {
	Name       string
	Opt        bool
	FixInitial bool
	FixFinal   bool
	Units      string
}

// ParameterOptions describes a static parameter. It has one value for the
// whole phase, so its initial and final values are the same.
type ParameterOptions struct {
	Name  string
	Opt   bool
	Units string
}

// Phase is a contiguous segment of a trajectory.
type Phase struct {
	Name          string
	Transcription string
	Time          TimeOptions
	States        []StateOptions
	Controls      []ControlOptions
	Parameters    []ParameterOptions
	// Outputs are ODE outputs; they are computed, never fixed.
	Outputs []string
}

// TimeName returns the name the phase's time variable is linked by.
func (p *Phase) TimeName() string {
	if p.Time.Name == "" {
		return DefaultTimeName
	}
	return p.Time.Name
}

// Spec resolves the boundary spec of variable name at loc.
func (p *Phase) Spec(name string, loc linkage.Location) (linkage.BoundarySpec, error) {
	if name == p.TimeName() {
		return p.timeSpec(loc), nil
	}
	for _, s := range p.States {
		if s.Name != name {
			continue
		}
		if loc == linkage.Initial {
			return rangeSpec(s.FixInitial, s.InitialBounds), nil
		}
		return rangeSpec(s.FixFinal, s.FinalBounds), nil
	}
	for _, c := range p.Controls {
		if c.Name != name {
			continue
		}
		if !c.Opt {
			return linkage.Pinned, nil
		}
		if loc == linkage.Initial {
			return linkage.BoundarySpec{Fixed: c.FixInitial}, nil
		}
		return linkage.BoundarySpec{Fixed: c.FixFinal}, nil
	}
	for _, prm := range p.Parameters {
		if prm.Name == name {
			return linkage.BoundarySpec{Fixed: !prm.Opt}, nil
		}
	}
	for _, out := range p.Outputs {
		if out == name {
			return linkage.Free, nil
		}
	}
	return linkage.BoundarySpec{}, fmt.Errorf("phase %s has no variable %q: %w", p.Name, name, ErrUnknownVariable)
}

// timeSpec resolves the initial or final time. The final time is
// initial + duration, so it is fixed only when both terms are.
func (p *Phase) timeSpec(loc linkage.Location) linkage.BoundarySpec {
	initial := rangeSpec(p.Time.FixInitial, p.Time.InitialBounds)
	if loc == linkage.Initial {
		return initial
	}
	duration := rangeSpec(p.Time.FixDuration, p.Time.DurationBounds)
	return linkage.Sum(initial, duration)
}

func rangeSpec(fixed bool, r *Range) linkage.BoundarySpec {
	if r == nil {
		return linkage.BoundarySpec{Fixed: fixed}
	}
	spec := linkage.Bounds(r[0], r[1])
	spec.Fixed = fixed
	return spec
}

// validate checks the phase is internally consistent.
func (p *Phase) validate() error {
	if p.Name == "" {
		return fmt.Errorf("phase name must not be empty")
	}
	seen := map[string]string{p.TimeName(): "time"}
	claim := func(name, kind string) error {
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("phase %s: %s %q clashes with %s of the same name: %w", p.Name, kind, name, prev, ErrDuplicateVariable)
		}
		seen[name] = kind
		return nil
	}

	if err := checkRange(p.Name, "time initial_bounds", p.Time.InitialBounds); err != nil {
		return err
	}
	if err := checkRange(p.Name, "time duration_bounds", p.Time.DurationBounds); err != nil {
		return err
	}
	for _, s := range p.States {
		if err := claim(s.Name, "state"); err != nil {
			return err
		}
		if err := checkRange(p.Name, fmt.Sprintf("state %q initial_bounds", s.Name), s.InitialBounds); err != nil {
			return err
		}
		if err := checkRange(p.Name, fmt.Sprintf("state %q final_bounds", s.Name), s.FinalBounds); err != nil {
			return err
		}
	}
	for _, c := range p.Controls {
		if err := claim(c.Name, "control"); err != nil {
			return err
		}
	}
	for _, prm := range p.Parameters {
		if err := claim(prm.Name, "parameter"); err != nil {
			return err
		}
	}
	for _, out := range p.Outputs {
		if err := claim(out, "output"); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(phase, what string, r *Range) error {
	if r == nil {
		return nil
	}
	if r[0] > r[1] {
		return fmt.Errorf("phase %s: %s lower %g exceeds upper %g: %w", phase, what, r[0], r[1], ErrInvalidBounds)
	}
	return nil
}
