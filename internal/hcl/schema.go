package hcl

import "github.com/hashicorp/hcl/v2"

// fileSchema lists the top-level blocks a trajectory file may contain.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "locals"},
		{Type: "trajectory", LabelNames: []string{"name"}},
	},
}

// trajectorySchema is decoded by hand rather than through gohcl so that
// link_phases and linkage_constraint blocks keep their relative order.
var trajectorySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "phase", LabelNames: []string{"name"}},
		{Type: "link_phases"},
		{Type: "linkage_constraint"},
	},
}

// phaseBlock represents a `phase` block inside a trajectory.
type phaseBlock struct {
	Transcription string            `hcl:"transcription,optional"`
	Time          *timeBlock        `hcl:"time,block"`
	States        []*stateBlock     `hcl:"state,block"`
	Controls      []*controlBlock   `hcl:"control,block"`
	Parameters    []*parameterBlock `hcl:"parameter,block"`
	Outputs       []*outputBlock    `hcl:"output,block"`
}

// timeBlock holds a phase's time options. Bounds are kept as expressions
// and converted separately so that tuples, lists and locals all work.
type timeBlock struct {
	Name           string         `hcl:"name,optional"`
	FixInitial     bool           `hcl:"fix_initial,optional"`
	FixDuration    bool           `hcl:"fix_duration,optional"`
	InitialBounds  hcl.Expression `hcl:"initial_bounds,optional"`
	DurationBounds hcl.Expression `hcl:"duration_bounds,optional"`
	Units          string         `hcl:"units,optional"`
}

type stateBlock struct {
	Name          string         `hcl:"name,label"`
	FixInitial    bool           `hcl:"fix_initial,optional"`
	FixFinal      bool           `hcl:"fix_final,optional"`
	InitialBounds hcl.Expression `hcl:"initial_bounds,optional"`
	FinalBounds   hcl.Expression `hcl:"final_bounds,optional"`
	Units         string         `hcl:"units,optional"`
	RateSource    string         `hcl:"rate_source,optional"`
}

type controlBlock struct {
	Name       string `hcl:"name,label"`
	Opt        *bool  `hcl:"opt,optional"`
	FixInitial bool   `hcl:"fix_initial,optional"`
	FixFinal   bool   `hcl:"fix_final,optional"`
	Units      string `hcl:"units,optional"`
}

type parameterBlock struct {
	Name  string `hcl:"name,label"`
	Opt   *bool  `hcl:"opt,optional"`
	Units string `hcl:"units,optional"`
}

type outputBlock struct {
	Name string `hcl:"name,label"`
}

type linkPhasesBlock struct {
	Phases    []string `hcl:"phases"`
	Vars      []string `hcl:"vars"`
	Connected bool     `hcl:"connected,optional"`
}

type linkageConstraintBlock struct {
	PhaseA    string `hcl:"phase_a"`
	PhaseB    string `hcl:"phase_b"`
	VarA      string `hcl:"var_a"`
	VarB      string `hcl:"var_b,optional"`
	LocA      string `hcl:"loc_a,optional"`
	LocB      string `hcl:"loc_b,optional"`
	Connected bool   `hcl:"connected,optional"`
}
