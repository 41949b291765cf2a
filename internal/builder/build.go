package builder

import (
	"context"
	"fmt"

	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/linkage"
	"github.com/vk/phaselink/internal/trajectory"
)

// Build translates one trajectory definition.
func Build(ctx context.Context, def *config.Trajectory) (*trajectory.Trajectory, error) {
	logger := ctxlog.FromContext(ctx).With("trajectory", def.Name)
	logger.Debug("Building trajectory.", "source", def.Source)

	traj := trajectory.New(def.Name)
	for _, p := range def.Phases {
		phase, err := buildPhase(p)
		if err != nil {
			return nil, fmt.Errorf("trajectory %s: %w", def.Name, err)
		}
		if err := traj.AddPhase(phase); err != nil {
			return nil, err
		}
		logger.Debug("Added phase.", "phase", phase.Name, "states", len(phase.States), "controls", len(phase.Controls))
	}

	for _, link := range def.Links {
		switch {
		case link.Phases != nil:
			if err := traj.LinkPhases(link.Phases.Phases, link.Phases.Vars, link.Phases.Connected); err != nil {
				return nil, err
			}
		case link.Constraint != nil:
			c, err := buildConstraint(link.Constraint)
			if err != nil {
				return nil, fmt.Errorf("trajectory %s: %w", def.Name, err)
			}
			if err := traj.AddLinkageConstraint(c); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Trajectory built.", "phases", len(traj.Phases()), "linkages", len(traj.Linkages()))
	return traj, nil
}

func buildPhase(p *config.Phase) (*trajectory.Phase, error) {
	phase := &trajectory.Phase{
		Name:          p.Name,
		Transcription: p.Transcription,
		Outputs:       append([]string(nil), p.Outputs...),
	}

	if t := p.Time; t != nil {
		phase.Time = trajectory.TimeOptions{
			Name:        t.Name,
			FixInitial:  t.FixInitial,
			FixDuration: t.FixDuration,
			Units:       t.Units,
		}
		var err error
		if phase.Time.InitialBounds, err = toRange(t.InitialBounds); err != nil {
			return nil, fmt.Errorf("phase %s: time initial_bounds: %w", p.Name, err)
		}
		if phase.Time.DurationBounds, err = toRange(t.DurationBounds); err != nil {
			return nil, fmt.Errorf("phase %s: time duration_bounds: %w", p.Name, err)
		}
	}

	for _, s := range p.States {
		st := trajectory.StateOptions{
			Name:       s.Name,
			FixInitial: s.FixInitial,
			FixFinal:   s.FixFinal,
			Units:      s.Units,
			RateSource: s.RateSource,
		}
		var err error
		if st.InitialBounds, err = toRange(s.InitialBounds); err != nil {
			return nil, fmt.Errorf("phase %s: state %q initial_bounds: %w", p.Name, s.Name, err)
		}
		if st.FinalBounds, err = toRange(s.FinalBounds); err != nil {
			return nil, fmt.Errorf("phase %s: state %q final_bounds: %w", p.Name, s.Name, err)
		}
		phase.States = append(phase.States, st)
	}

	for _, c := range p.Controls {
		phase.Controls = append(phase.Controls, trajectory.ControlOptions{
			Name:       c.Name,
			Opt:        optOrDefault(c.Opt),
			FixInitial: c.FixInitial,
			FixFinal:   c.FixFinal,
			Units:      c.Units,
		})
	}
	for _, prm := range p.Parameters {
		phase.Parameters = append(phase.Parameters, trajectory.ParameterOptions{
			Name:  prm.Name,
			Opt:   optOrDefault(prm.Opt),
			Units: prm.Units,
		})
	}
	return phase, nil
}

func buildConstraint(c *config.LinkageConstraint) (trajectory.LinkageConstraint, error) {
	out := trajectory.LinkageConstraint{
		PhaseA:    c.PhaseA,
		PhaseB:    c.PhaseB,
		VarA:      c.VarA,
		VarB:      c.VarB,
		Connected: c.Connected,
	}
	if c.LocA != "" {
		loc, err := linkage.ParseLocation(c.LocA)
		if err != nil {
			return out, fmt.Errorf("linkage constraint loc_a: %w", err)
		}
		out.LocA = loc
	}
	if c.LocB != "" {
		loc, err := linkage.ParseLocation(c.LocB)
		if err != nil {
			return out, fmt.Errorf("linkage constraint loc_b: %w", err)
		}
		out.LocB = loc
	}
	return out, nil
}

func toRange(b []float64) (*trajectory.Range, error) {
	if b == nil {
		return nil, nil
	}
	if len(b) != 2 {
		return nil, fmt.Errorf("expected [lower, upper], got %d values", len(b))
	}
	return &trajectory.Range{b[0], b[1]}, nil
}

func optOrDefault(opt *bool) bool {
	if opt == nil {
		return true
	}
	return *opt
}
