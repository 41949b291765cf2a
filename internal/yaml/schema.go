package yaml

type fileRoot struct {
	Trajectories []trajectoryDoc `yaml:"trajectories"`
}

type trajectoryDoc struct {
	Name   string     `yaml:"name"`
	Phases []phaseDoc `yaml:"phases"`
	Links  []linkDoc  `yaml:"links"`
}

type phaseDoc struct {
	Name          string         `yaml:"name"`
	Transcription string         `yaml:"transcription"`
	Time          *timeDoc       `yaml:"time"`
	States        []stateDoc     `yaml:"states"`
	Controls      []controlDoc   `yaml:"controls"`
	Parameters    []parameterDoc `yaml:"parameters"`
	Outputs       []string       `yaml:"outputs"`
}

type timeDoc struct {
	Name           string    `yaml:"name"`
	FixInitial     bool      `yaml:"fix_initial"`
	FixDuration    bool      `yaml:"fix_duration"`
	InitialBounds  []float64 `yaml:"initial_bounds"`
	DurationBounds []float64 `yaml:"duration_bounds"`
	Units          string    `yaml:"units"`
}

type stateDoc struct {
	Name          string    `yaml:"name"`
	FixInitial    bool      `yaml:"fix_initial"`
	FixFinal      bool      `yaml:"fix_final"`
	InitialBounds []float64 `yaml:"initial_bounds"`
	FinalBounds   []float64 `yaml:"final_bounds"`
	Units         string    `yaml:"units"`
	RateSource    string    `yaml:"rate_source"`
}

type controlDoc struct {
	Name       string `yaml:"name"`
	Opt        *bool  `yaml:"opt"`
	FixInitial bool   `yaml:"fix_initial"`
	FixFinal   bool   `yaml:"fix_final"`
	Units      string `yaml:"units"`
}

type parameterDoc struct {
	Name  string `yaml:"name"`
	Opt   *bool  `yaml:"opt"`
	Units string `yaml:"units"`
}

type linkDoc struct {
	LinkPhases        *linkPhasesDoc        `yaml:"link_phases"`
	LinkageConstraint *linkageConstraintDoc `yaml:"linkage_constraint"`
}

type linkPhasesDoc struct {
	Phases    []string `yaml:"phases"`
	Vars      []string `yaml:"vars"`
	Connected bool     `yaml:"connected"`
}

type linkageConstraintDoc struct {
	PhaseA    string `yaml:"phase_a"`
	PhaseB    string `yaml:"phase_b"`
	VarA      string `yaml:"var_a"`
	VarB      string `yaml:"var_b"`
	LocA      string `yaml:"loc_a"`
	LocB      string `yaml:"loc_b"`
	Connected bool   `yaml:"connected"`
}
