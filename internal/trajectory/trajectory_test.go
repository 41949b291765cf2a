package trajectory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phaselink/internal/linkage"
)

func rng(lo, hi float64) *Range {
	return &Range{lo, hi}
}

// cannonball builds the two-phase ascent/descent problem: the ascent starts
// from a fixed launch point and ends at apogee (gam fixed), the descent
// ends on the ground (h fixed). mutate may adjust either phase before the
// phases are added.
func cannonball(t *testing.T, mutate func(ascent, descent *Phase)) *Trajectory {
	t.Helper()

	ascent := &Phase{
		Name:          "ascent",
		Transcription: "radau",
		Time:          TimeOptions{FixInitial: true, DurationBounds: rng(1, 100), Units: "s"},
		States: []StateOptions{
			{Name: "r", FixInitial: true, Units: "m", RateSource: "r_dot"},
			{Name: "h", FixInitial: true, Units: "m", RateSource: "h_dot"},
			{Name: "gam", FixFinal: true, Units: "rad", RateSource: "gam_dot"},
			{Name: "v", Units: "m/s", RateSource: "v_dot"},
		},
		Parameters: []ParameterOptions{{Name: "S", Opt: true, Units: "m**2"}, {Name: "mass", Opt: true, Units: "kg"}},
		Outputs:    []string{"ke"},
	}
	descent := &Phase{
		Name:          "descent",
		Transcription: "gauss-lobatto",
		Time:          TimeOptions{InitialBounds: rng(.5, 100), DurationBounds: rng(.5, 100), Units: "s"},
		States: []StateOptions{
			{Name: "r", Units: "m", RateSource: "r_dot"},
			{Name: "h", FixFinal: true, Units: "m", RateSource: "h_dot"},
			{Name: "gam", FixInitial: true, Units: "rad", RateSource: "gam_dot"},
			{Name: "v", Units: "m/s", RateSource: "v_dot"},
		},
		Parameters: []ParameterOptions{{Name: "S", Opt: true, Units: "m**2"}, {Name: "mass", Opt: true, Units: "kg"}},
		Outputs:    []string{"ke"},
	}
	if mutate != nil {
		mutate(ascent, descent)
	}

	traj := New("traj")
	require.NoError(t, traj.AddPhase(ascent))
	require.NoError(t, traj.AddPhase(descent))
	return traj
}

func state(p *Phase, name string) *StateOptions {
	for i := range p.States {
		if p.States[i].Name == name {
			return &p.States[i]
		}
	}
	panic("no state " + name)
}

func linkKE(t *testing.T, traj *Trajectory) {
	t.Helper()
	require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "ascent", PhaseB: "descent", VarA: "ke", VarB: "ke"}))
}

func TestSetup_LinkFixedStatesFinalToInitial(t *testing.T) {
	// --- Arrange ---
	traj := cannonball(t, nil)
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "h", "gam"}, false))
	linkKE(t, traj)

	// --- Act ---
	report, err := traj.Setup(context.Background())

	// --- Assert ---
	require.Nil(t, report)
	require.EqualError(t, err, `Invalid linkage in Trajectory traj: Cannot link final value of "gam" in ascent to initial value of "gam" in descent.  Values on both sides of the linkage are fixed.`)
}

func TestSetup_LinkFixedStatesFinalToFinal(t *testing.T) {
	traj := cannonball(t, func(ascent, descent *Phase) {
		state(ascent, "h").FixFinal = true
		state(descent, "h").FixInitial = true
		state(descent, "gam").FixInitial = false
	})
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "gam"}, false))
	require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{
		PhaseA: "ascent", PhaseB: "descent", VarA: "h", VarB: "h", LocA: linkage.Final, LocB: linkage.Final,
	}))
	linkKE(t, traj)

	_, err := traj.Setup(context.Background())

	require.EqualError(t, err, `Invalid linkage in Trajectory traj: Cannot link final value of "h" in ascent to final value of "h" in descent.  Values on both sides of the linkage are fixed.`)
}

func TestSetup_LinkFixedStatesInitialToInitial(t *testing.T) {
	traj := cannonball(t, func(ascent, descent *Phase) {
		state(ascent, "h").FixFinal = true
		state(descent, "h").FixInitial = true
		state(descent, "gam").FixInitial = false
	})
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "gam"}, false))
	require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{
		PhaseA: "ascent", PhaseB: "descent", VarA: "h", VarB: "h", LocA: linkage.Initial, LocB: linkage.Initial,
	}))
	linkKE(t, traj)

	_, err := traj.Setup(context.Background())

	require.EqualError(t, err, `Invalid linkage in Trajectory traj: Cannot link initial value of "h" in ascent to initial value of "h" in descent.  Values on both sides of the linkage are fixed.`)
}

func TestSetup_LinkFixedTimesFinalToInitial(t *testing.T) {
	traj := cannonball(t, func(ascent, descent *Phase) {
		ascent.Time = TimeOptions{FixInitial: true, FixDuration: true, Units: "s"}
		descent.Time = TimeOptions{FixInitial: true, FixDuration: true, Units: "s"}
		state(descent, "gam").FixInitial = false
	})
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "h", "gam"}, false))
	linkKE(t, traj)

	_, err := traj.Setup(context.Background())

	require.EqualError(t, err, `Invalid linkage in Trajectory traj: Cannot link final value of "time" in ascent to initial value of "time" in descent.  Values on both sides of the linkage are fixed.`)
}

func TestSetup_LinkBoundedTimesFinalToInitial(t *testing.T) {
	traj := cannonball(t, func(ascent, descent *Phase) {
		ascent.Time = TimeOptions{FixInitial: true, DurationBounds: rng(10, 10), Units: "s"}
		descent.Time = TimeOptions{InitialBounds: rng(10, 10), DurationBounds: rng(10, 10), Units: "s"}
		state(descent, "gam").FixInitial = false
	})
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "h", "gam"}, false))
	linkKE(t, traj)

	_, err := traj.Setup(context.Background())

	var linkErr *linkage.Error
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "time", linkErr.A.Var)
	require.EqualError(t, err, `Invalid linkage in Trajectory traj: Cannot link final value of "time" in ascent to initial value of "time" in descent.  Values on both sides of the linkage are fixed.`)
}

func TestSetup_FreeLinkagePasses(t *testing.T) {
	traj := cannonball(t, func(ascent, descent *Phase) {
		state(descent, "gam").FixInitial = false
	})
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"time", "r", "h", "gam"}, false))
	linkKE(t, traj)

	report, err := traj.Setup(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Report{Trajectory: "traj", Phases: 2, Linkages: 5, Connections: 0}, report)
}

func TestSetup_OnlyRLinked(t *testing.T) {
	traj := cannonball(t, nil)
	require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"r"}, false))

	_, err := traj.Setup(context.Background())
	assert.NoError(t, err)
}

func TestSetup_VarOrderDoesNotChangeVerdict(t *testing.T) {
	for _, vars := range [][]string{{"time", "r", "h", "gam"}, {"time", "gam", "h", "r"}, {"gam", "r"}} {
		traj := cannonball(t, nil)
		require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, vars, false))

		_, err := traj.Setup(context.Background())

		var linkErr *linkage.Error
		require.True(t, errors.As(err, &linkErr), "vars %v", vars)
		assert.Equal(t, "gam", linkErr.A.Var, "vars %v", vars)
	}
}

func TestPhaseSpec_TimeFixedness(t *testing.T) {
	testCases := []struct {
		name         string
		time         TimeOptions
		initialFixed bool
		finalFixed   bool
	}{
		{name: "all free", time: TimeOptions{}, initialFixed: false, finalFixed: false},
		{name: "fixed initial only", time: TimeOptions{FixInitial: true, DurationBounds: rng(1, 100)}, initialFixed: true, finalFixed: false},
		{name: "fixed duration only", time: TimeOptions{FixDuration: true, InitialBounds: rng(0, 5)}, initialFixed: false, finalFixed: false},
		{name: "fixed initial and duration", time: TimeOptions{FixInitial: true, FixDuration: true}, initialFixed: true, finalFixed: true},
		{name: "fixed initial, collapsed duration", time: TimeOptions{FixInitial: true, DurationBounds: rng(10, 10)}, initialFixed: true, finalFixed: true},
		{name: "collapsed initial, fixed duration", time: TimeOptions{InitialBounds: rng(3, 3), FixDuration: true}, initialFixed: true, finalFixed: true},
		{name: "both collapsed without flags", time: TimeOptions{InitialBounds: rng(10, 10), DurationBounds: rng(10, 10)}, initialFixed: true, finalFixed: true},
		{name: "collapsed duration, open initial", time: TimeOptions{InitialBounds: rng(0.5, 100), DurationBounds: rng(10, 10)}, initialFixed: false, finalFixed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Phase{Name: "p", Time: tc.time}

			initial, err := p.Spec("time", linkage.Initial)
			require.NoError(t, err)
			final, err := p.Spec("time", linkage.Final)
			require.NoError(t, err)

			assert.Equal(t, tc.initialFixed, initial.IsFixed(), "initial")
			assert.Equal(t, tc.finalFixed, final.IsFixed(), "final")
		})
	}
}

func TestPhaseSpec_OtherVariables(t *testing.T) {
	p := &Phase{
		Name: "burn",
		Time: TimeOptions{Name: "t"},
		States: []StateOptions{
			{Name: "m", InitialBounds: rng(1000, 1000), FinalBounds: rng(100, 1000)},
		},
		Controls: []ControlOptions{
			{Name: "throttle", Opt: true, FixFinal: true},
			{Name: "theta", Opt: false},
		},
		Parameters: []ParameterOptions{
			{Name: "isp", Opt: false},
			{Name: "c", Opt: true},
		},
		Outputs: []string{"q"},
	}

	fixed := func(name string, loc linkage.Location) bool {
		t.Helper()
		spec, err := p.Spec(name, loc)
		require.NoError(t, err)
		return spec.IsFixed()
	}

	assert.False(t, fixed("t", linkage.Initial), "renamed time")
	assert.True(t, fixed("m", linkage.Initial), "collapsed state bounds")
	assert.False(t, fixed("m", linkage.Final))
	assert.False(t, fixed("throttle", linkage.Initial))
	assert.True(t, fixed("throttle", linkage.Final))
	assert.True(t, fixed("theta", linkage.Initial), "non-optimized control")
	assert.True(t, fixed("isp", linkage.Final), "non-optimized parameter")
	assert.False(t, fixed("c", linkage.Initial))
	assert.False(t, fixed("q", linkage.Final), "ODE output")

	_, err := p.Spec("time", linkage.Initial)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestAddPhase_Errors(t *testing.T) {
	traj := New("traj")
	require.NoError(t, traj.AddPhase(&Phase{Name: "a"}))

	err := traj.AddPhase(&Phase{Name: "a"})
	assert.ErrorIs(t, err, ErrDuplicatePhase)

	err = traj.AddPhase(&Phase{Name: "b", States: []StateOptions{{Name: "x"}}, Controls: []ControlOptions{{Name: "x"}}})
	assert.ErrorIs(t, err, ErrDuplicateVariable)

	err = traj.AddPhase(&Phase{Name: "c", States: []StateOptions{{Name: "time"}}})
	assert.ErrorIs(t, err, ErrDuplicateVariable)

	err = traj.AddPhase(&Phase{Name: "d", Time: TimeOptions{DurationBounds: rng(5, 1)}})
	assert.ErrorIs(t, err, ErrInvalidBounds)

	err = traj.AddPhase(&Phase{Name: ""})
	assert.ErrorContains(t, err, "phase name must not be empty")

	assert.Len(t, traj.Phases(), 1)
}

func TestLinkageDeclaration_Errors(t *testing.T) {
	traj := New("traj")

	assert.ErrorIs(t, traj.LinkPhases([]string{"a"}, []string{"time"}, false), ErrInvalidLinkage)
	assert.ErrorIs(t, traj.LinkPhases([]string{"a", "b"}, nil, false), ErrInvalidLinkage)
	assert.ErrorIs(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "a", VarA: "x"}), ErrInvalidLinkage)
	assert.ErrorContains(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "a", PhaseB: "b", VarA: "x", LocA: "middle"}), "invalid location")
	assert.Empty(t, traj.Linkages())
}

func TestAddLinkageConstraint_Defaults(t *testing.T) {
	traj := New("traj")
	require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "a", PhaseB: "b", VarA: "x"}))

	assert.Equal(t, []linkage.Request{{
		A: linkage.Endpoint{Phase: "a", Var: "x", Loc: linkage.Final},
		B: linkage.Endpoint{Phase: "b", Var: "x", Loc: linkage.Initial},
	}}, traj.Linkages())
}

func TestSetup_ReferenceErrors(t *testing.T) {
	t.Run("unknown phase", func(t *testing.T) {
		traj := cannonball(t, nil)
		require.NoError(t, traj.LinkPhases([]string{"ascent", "orbit"}, []string{"r"}, false))
		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, ErrUnknownPhase)
		assert.ErrorContains(t, err, `references phase "orbit"`)
	})

	t.Run("unknown variable", func(t *testing.T) {
		traj := cannonball(t, nil)
		require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"alpha"}, false))
		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, ErrUnknownVariable)
		assert.ErrorContains(t, err, "resolving ascent.alpha.final")
	})

	t.Run("duplicate linkage in either direction", func(t *testing.T) {
		traj := cannonball(t, nil)
		require.NoError(t, traj.LinkPhases([]string{"ascent", "descent"}, []string{"r"}, false))
		require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{
			PhaseA: "descent", PhaseB: "ascent", VarA: "r", LocA: linkage.Initial, LocB: linkage.Final,
		}))
		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, ErrDuplicateLinkage)
	})
}

func TestSetup_Connections(t *testing.T) {
	threePhase := func(t *testing.T) *Trajectory {
		t.Helper()
		traj := New("traj")
		for _, name := range []string{"burn1", "coast", "burn2"} {
			require.NoError(t, traj.AddPhase(&Phase{
				Name:   name,
				States: []StateOptions{{Name: "x"}, {Name: "v"}},
			}))
		}
		return traj
	}

	t.Run("feed-forward chain", func(t *testing.T) {
		traj := threePhase(t)
		require.NoError(t, traj.LinkPhases([]string{"burn1", "coast", "burn2"}, []string{"time", "x", "v"}, true))

		report, err := traj.Setup(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6, report.Connections)
		assert.Equal(t, 3, report.Phases)
	})

	t.Run("target with two sources", func(t *testing.T) {
		traj := threePhase(t)
		require.NoError(t, traj.LinkPhases([]string{"burn1", "burn2"}, []string{"x"}, true))
		require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "coast", PhaseB: "burn2", VarA: "x", Connected: true}))

		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, ErrDuplicateConnection)
		assert.ErrorContains(t, err, "burn2.x.initial is already connected to burn1.x.final")
	})

	t.Run("loop of connections", func(t *testing.T) {
		traj := threePhase(t)
		require.NoError(t, traj.LinkPhases([]string{"burn1", "coast", "burn2"}, []string{"x"}, true))
		require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{
			PhaseA: "burn2", PhaseB: "burn1", VarA: "v", LocA: linkage.Final, LocB: linkage.Initial, Connected: true,
		}))

		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, ErrConnectionCycle)
		assert.ErrorContains(t, err, "burn1 -> coast -> burn2 -> burn1")
	})

	t.Run("unconnected loop is fine", func(t *testing.T) {
		traj := threePhase(t)
		require.NoError(t, traj.LinkPhases([]string{"burn1", "coast", "burn2"}, []string{"x"}, false))
		require.NoError(t, traj.AddLinkageConstraint(LinkageConstraint{PhaseA: "burn2", PhaseB: "burn1", VarA: "v"}))

		_, err := traj.Setup(context.Background())
		assert.NoError(t, err)
	})

	t.Run("connected endpoints both fixed", func(t *testing.T) {
		traj := New("traj")
		require.NoError(t, traj.AddPhase(&Phase{Name: "a", States: []StateOptions{{Name: "x", FixFinal: true}}}))
		require.NoError(t, traj.AddPhase(&Phase{Name: "b", States: []StateOptions{{Name: "x", FixInitial: true}}}))
		require.NoError(t, traj.LinkPhases([]string{"a", "b"}, []string{"x"}, true))

		_, err := traj.Setup(context.Background())
		assert.ErrorIs(t, err, linkage.ErrBothFixed)
	})
}
