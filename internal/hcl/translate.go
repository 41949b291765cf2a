// This file contains the logic for translating HCL trajectory blocks into
// the format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
)

// translateTrajectory walks a trajectory block in source order.
func (l *Loader) translateTrajectory(ctx context.Context, path string, block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Trajectory, error) {
	logger := ctxlog.FromContext(ctx).With("trajectory", block.Labels[0])

	content, diags := block.Body.Content(trajectorySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	traj := &config.Trajectory{Name: block.Labels[0], Source: path}
	for _, inner := range content.Blocks {
		switch inner.Type {
		case "phase":
			phase, err := l.translatePhase(ctx, inner, evalCtx)
			if err != nil {
				return nil, err
			}
			traj.Phases = append(traj.Phases, phase)

		case "link_phases":
			var lp linkPhasesBlock
			if diags := gohcl.DecodeBody(inner.Body, evalCtx, &lp); diags.HasErrors() {
				return nil, diags
			}
			traj.Links = append(traj.Links, &config.Link{Phases: &config.LinkPhases{
				Phases:    lp.Phases,
				Vars:      lp.Vars,
				Connected: lp.Connected,
			}})

		case "linkage_constraint":
			var lc linkageConstraintBlock
			if diags := gohcl.DecodeBody(inner.Body, evalCtx, &lc); diags.HasErrors() {
				return nil, diags
			}
			traj.Links = append(traj.Links, &config.Link{Constraint: &config.LinkageConstraint{
				PhaseA:    lc.PhaseA,
				PhaseB:    lc.PhaseB,
				VarA:      lc.VarA,
				VarB:      lc.VarB,
				LocA:      lc.LocA,
				LocB:      lc.LocB,
				Connected: lc.Connected,
			}})
		}
	}

	logger.Debug("Translated trajectory block.", "phases", len(traj.Phases), "links", len(traj.Links))
	return traj, nil
}

// translatePhase converts a phase block into the agnostic model.
func (l *Loader) translatePhase(ctx context.Context, block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Phase, error) {
	var pb phaseBlock
	if diags := gohcl.DecodeBody(block.Body, evalCtx, &pb); diags.HasErrors() {
		return nil, diags
	}
	name := block.Labels[0]

	phase := &config.Phase{Name: name, Transcription: pb.Transcription}

	if pb.Time != nil {
		t := &config.Time{
			Name:        pb.Time.Name,
			FixInitial:  pb.Time.FixInitial,
			FixDuration: pb.Time.FixDuration,
			Units:       pb.Time.Units,
		}
		var err error
		if t.InitialBounds, err = decodeBounds(ctx, pb.Time.InitialBounds, evalCtx, "initial_bounds"); err != nil {
			return nil, fmt.Errorf("in phase '%s', time: %w", name, err)
		}
		if t.DurationBounds, err = decodeBounds(ctx, pb.Time.DurationBounds, evalCtx, "duration_bounds"); err != nil {
			return nil, fmt.Errorf("in phase '%s', time: %w", name, err)
		}
		phase.Time = t
	}

	for _, sb := range pb.States {
		s := &config.State{
			Name:       sb.Name,
			FixInitial: sb.FixInitial,
			FixFinal:   sb.FixFinal,
			Units:      sb.Units,
			RateSource: sb.RateSource,
		}
		var err error
		if s.InitialBounds, err = decodeBounds(ctx, sb.InitialBounds, evalCtx, "initial_bounds"); err != nil {
			return nil, fmt.Errorf("in phase '%s', state '%s': %w", name, sb.Name, err)
		}
		if s.FinalBounds, err = decodeBounds(ctx, sb.FinalBounds, evalCtx, "final_bounds"); err != nil {
			return nil, fmt.Errorf("in phase '%s', state '%s': %w", name, sb.Name, err)
		}
		phase.States = append(phase.States, s)
	}

	for _, cb := range pb.Controls {
		phase.Controls = append(phase.Controls, &config.Control{
			Name:       cb.Name,
			Opt:        cb.Opt,
			FixInitial: cb.FixInitial,
			FixFinal:   cb.FixFinal,
			Units:      cb.Units,
		})
	}
	for _, prm := range pb.Parameters {
		phase.Parameters = append(phase.Parameters, &config.Parameter{
			Name:  prm.Name,
			Opt:   prm.Opt,
			Units: prm.Units,
		})
	}
	for _, out := range pb.Outputs {
		phase.Outputs = append(phase.Outputs, out.Name)
	}
	return phase, nil
}

// sortAttributes orders attributes by source position so evaluation and
// error reporting do not depend on map iteration order.
func sortAttributes(attrs []*hcl.Attribute) []*hcl.Attribute {
	sort.Slice(attrs, func(i, j int) bool {
		a, b := attrs[i].Range, attrs[j].Range
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Start.Byte < b.Start.Byte
	})
	return attrs
}
