// Package trajectory holds the plain phase records of a multi-phase
// trajectory and runs the one-shot setup checks over its linkages.
//
// Phases are flat data: time options, states, controls, parameters and the
// names of ODE outputs. A Trajectory collects phases and linkage
// declarations in the order they are made; Setup then verifies every
// referenced phase exists, rejects duplicate linkages, applies the
// both-sides-fixed rule from package linkage, and checks that connected
// linkages form a well-defined feed-forward chain.
package trajectory
