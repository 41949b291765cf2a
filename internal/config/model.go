package config

import "fmt"

// Model is the unified representation of all loaded trajectory definitions.
type Model struct {
	Trajectories []*Trajectory
}

// Merge appends the trajectories of other. Trajectory names must be unique
// across all loaded files.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, t := range other.Trajectories {
		if prev := m.Trajectory(t.Name); prev != nil {
			return fmt.Errorf("trajectory %q defined in %s is already defined in %s", t.Name, t.Source, prev.Source)
		}
		m.Trajectories = append(m.Trajectories, t)
	}
	return nil
}

// Trajectory returns the trajectory with the given name, or nil.
func (m *Model) Trajectory(name string) *Trajectory {
	for _, t := range m.Trajectories {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Trajectory is the format-agnostic representation of a `trajectory` block.
type Trajectory struct {
	Name   string
	Source string
	Phases []*Phase
	// Links holds link_phases and linkage_constraint declarations in file
	// order. Exactly one of the two fields of each entry is set.
	Links []*Link
}

// Link is one linkage declaration.
type Link struct {
	Phases     *LinkPhases
	Constraint *LinkageConstraint
}

// Phase is the format-agnostic representation of a `phase` block.
type Phase struct {
	Name          string
	Transcription string
	Time          *Time
	States        []*State
	Controls      []*Control
	Parameters    []*Parameter
	Outputs       []string
}

// Time holds a phase's time options.
type Time struct {
	Name           string
	FixInitial     bool
	FixDuration    bool
	InitialBounds  []float64
	DurationBounds []float64
	Units          string
}

// State holds one state variable's options.
type State struct {
	Name          string
	FixInitial    bool
	FixFinal      bool
	InitialBounds []float64
	FinalBounds   []float64
	Units         string
	RateSource    string
}

// Control holds one control's options. A nil Opt means optimized.
type Control struct {
	Name       string
	Opt        *bool
	FixInitial bool
	FixFinal   bool
	Units      string
}

// Parameter holds one parameter's options. A nil Opt means optimized.
type Parameter struct {
	Name  string
	Opt   *bool
	Units string
}

// LinkPhases chains consecutive phases over the listed variables.
type LinkPhases struct {
	Phases    []string
	Vars      []string
	Connected bool
}

// LinkageConstraint links one endpoint to another.
type LinkageConstraint struct {
	PhaseA    string
	PhaseB    string
	VarA      string
	VarB      string
	LocA      string
	LocB      string
	Connected bool
}
