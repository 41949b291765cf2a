// Package linkage decides whether a proposed linkage between two phase
// boundaries is legal.
//
// A linkage ties the value of a variable at one phase's boundary (its
// initial or final value) to a boundary value in another phase, either by a
// direct connection or by an equality constraint. Each side is described by
// a BoundarySpec. When both sides are fixed the linkage is redundant at best
// and infeasible at worst, so it is rejected with an *Error before any
// numerical model is assembled.
//
// Everything in this package is pure: no I/O, no shared state, and the
// verdict for a request depends only on the request and its two specs.
package linkage
