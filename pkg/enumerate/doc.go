// Package enumerate counts Hamiltonian paths and cycles of a graph given as
// an ordered edge list.
//
// A [Universe] fixes the vertices 1..n, the edges and the order in which
// they are processed. The order never changes a count, only the time and
// memory needed to compute it. An [Engine] answers [Query] values against a
// universe.
//
// # Semantics
//
// Paths and cycles are counted as edge sets, so a path and its reversal
// count once, as does a cycle and its rotations.
//
//	vertices  paths  cycles
//	0         0      0
//	1         1      0
//	2         1 if joined, else 0
//	n ≥ 3     as usual
//
// A query may fix the source, the sink or both ends of a path; fixing ends
// in cycle mode, or fixing both ends to the same vertex, is an error.
//
// # Frontier
//
// [Frontier] is the default engine: a dynamic program over the edge order
// that keeps, for every vertex on the frontier, the other end of the path
// fragment it belongs to (its "mate"). Paths are counted as Hamiltonian
// cycles through an extra apex vertex joined to the allowed endpoints.
// Memory is exponential in the frontier width, which is why callers order
// vertices with pkg/ordering first.
package enumerate
