// Package yaml provides the YAML implementation of the config.Loader
// interface. A file holds a list of trajectories; linkage declarations are
// a single ordered `links` list so that their declaration order survives
// decoding:
//
//	trajectories:
//	  - name: traj
//	    phases:
//	      - name: ascent
//	        time: {fix_initial: true, duration_bounds: [10, 10]}
//	        states:
//	          - {name: gam, fix_final: true}
//	    links:
//	      - link_phases: {phases: [ascent, descent], vars: [time, gam]}
//	      - linkage_constraint: {phase_a: ascent, phase_b: descent, var_a: h, loc_b: final}
package yaml
