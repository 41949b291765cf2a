// Package config defines the format-agnostic model of trajectory
// definitions, along with the Loader interface implemented by the HCL and
// YAML front-ends.
//
// The `config.Model` is the single source of truth for the `builder`
// package, which turns each config.Trajectory into a trajectory.Trajectory.
package config
