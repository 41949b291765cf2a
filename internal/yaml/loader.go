package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load decodes every YAML file under paths into a single model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		var root fileRoot
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		fileModel, err := translate(file, &root)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("YAML loading complete.", "files", len(files), "trajectories", len(model.Trajectories))
	return model, nil
}

func translate(source string, root *fileRoot) (*config.Model, error) {
	model := &config.Model{}
	for i, td := range root.Trajectories {
		if td.Name == "" {
			return nil, fmt.Errorf("trajectory #%d has no name", i+1)
		}
		traj := &config.Trajectory{Name: td.Name, Source: source}

		for _, pd := range td.Phases {
			phase, err := translatePhase(pd)
			if err != nil {
				return nil, fmt.Errorf("trajectory %q: %w", td.Name, err)
			}
			traj.Phases = append(traj.Phases, phase)
		}

		for j, ld := range td.Links {
			link, err := translateLink(ld)
			if err != nil {
				return nil, fmt.Errorf("trajectory %q, link #%d: %w", td.Name, j+1, err)
			}
			traj.Links = append(traj.Links, link)
		}

		if err := model.Merge(&config.Model{Trajectories: []*config.Trajectory{traj}}); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func translatePhase(pd phaseDoc) (*config.Phase, error) {
	if pd.Name == "" {
		return nil, errors.New("phase has no name")
	}
	phase := &config.Phase{Name: pd.Name, Transcription: pd.Transcription, Outputs: pd.Outputs}

	if pd.Time != nil {
		if err := checkBounds(pd.Name, "time initial_bounds", pd.Time.InitialBounds); err != nil {
			return nil, err
		}
		if err := checkBounds(pd.Name, "time duration_bounds", pd.Time.DurationBounds); err != nil {
			return nil, err
		}
		phase.Time = &config.Time{
			Name:           pd.Time.Name,
			FixInitial:     pd.Time.FixInitial,
			FixDuration:    pd.Time.FixDuration,
			InitialBounds:  pd.Time.InitialBounds,
			DurationBounds: pd.Time.DurationBounds,
			Units:          pd.Time.Units,
		}
	}
	for _, sd := range pd.States {
		if err := checkBounds(pd.Name, fmt.Sprintf("state %q initial_bounds", sd.Name), sd.InitialBounds); err != nil {
			return nil, err
		}
		if err := checkBounds(pd.Name, fmt.Sprintf("state %q final_bounds", sd.Name), sd.FinalBounds); err != nil {
			return nil, err
		}
		phase.States = append(phase.States, &config.State{
			Name:          sd.Name,
			FixInitial:    sd.FixInitial,
			FixFinal:      sd.FixFinal,
			InitialBounds: sd.InitialBounds,
			FinalBounds:   sd.FinalBounds,
			Units:         sd.Units,
			RateSource:    sd.RateSource,
		})
	}
	for _, cd := range pd.Controls {
		phase.Controls = append(phase.Controls, &config.Control{
			Name:       cd.Name,
			Opt:        cd.Opt,
			FixInitial: cd.FixInitial,
			FixFinal:   cd.FixFinal,
			Units:      cd.Units,
		})
	}
	for _, prm := range pd.Parameters {
		phase.Parameters = append(phase.Parameters, &config.Parameter{Name: prm.Name, Opt: prm.Opt, Units: prm.Units})
	}
	return phase, nil
}

func translateLink(ld linkDoc) (*config.Link, error) {
	switch {
	case ld.LinkPhases != nil && ld.LinkageConstraint != nil:
		return nil, errors.New("set either link_phases or linkage_constraint, not both")
	case ld.LinkPhases != nil:
		return &config.Link{Phases: &config.LinkPhases{
			Phases:    ld.LinkPhases.Phases,
			Vars:      ld.LinkPhases.Vars,
			Connected: ld.LinkPhases.Connected,
		}}, nil
	case ld.LinkageConstraint != nil:
		c := ld.LinkageConstraint
		return &config.Link{Constraint: &config.LinkageConstraint{
			PhaseA:    c.PhaseA,
			PhaseB:    c.PhaseB,
			VarA:      c.VarA,
			VarB:      c.VarB,
			LocA:      c.LocA,
			LocB:      c.LocB,
			Connected: c.Connected,
		}}, nil
	default:
		return nil, errors.New("empty link: expected link_phases or linkage_constraint")
	}
}

func checkBounds(phase, what string, b []float64) error {
	if b != nil && len(b) != 2 {
		return fmt.Errorf("phase %q: %s must have exactly two elements [lower, upper], got %d", phase, what, len(b))
	}
	return nil
}
