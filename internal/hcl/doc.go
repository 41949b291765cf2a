// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for file parsing, `locals` evaluation and
// the translation of trajectory blocks into the format-agnostic model.
package hcl
