/*
Package builder turns the format-agnostic configuration model into
trajectories ready for setup.

The construction of a trajectory is a two-phase process:

 1. Phase Creation: every phase block is translated into a flat
    trajectory.Phase record, applying the option defaults (time linked as
    "time", controls and parameters optimized unless `opt = false`) and
    converting `[lower, upper]` lists into ranges. Phases are added in file
    order, which rejects duplicate phase and variable names.

 2. Linkage Declaration: link_phases and linkage_constraint entries are
    replayed in file order, so the first offending linkage reported by
    Setup is the first one the user wrote.

The builder does not run Setup itself; the caller decides when the
one-shot check happens.
*/
package builder
