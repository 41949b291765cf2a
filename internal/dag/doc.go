// Package dag provides a small directed graph used to reason about
// connected phase linkages.
//
// A connected linkage feeds a value computed in one phase directly into
// another phase as an input. Each phase is a node and each connection an
// edge from the source phase to the target phase. A cycle means a phase
// would, through some chain of connections, receive its own output as an
// input, which cannot be resolved without an iterative solver.
package dag
