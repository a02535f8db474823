// Package separation computes vertex orderings of minimum vertex separation
// (pathwidth in the linear-layout sense) by encoding the problem as weighted
// MaxSAT.
//
// # Model
//
// For a graph on n vertices and steps t = 1..n the encoding uses
//
//	y(v,t)  v is among the first t vertices of the order
//	u(v,t)  v is a boundary vertex at step t
//	z(t)    the width bound is charged at step t
//
// and the hard clauses
//
//	¬y(v,t) ∨ y(v,t+1)             prefixes grow
//	¬y(v,t) ∨ u(v,t) ∨ y(w,t)      w a neighbour of v
//	Σ_v y(v,t) = t                 prefix t has t vertices
//	Σ_v u(v,t) + Σ_s ¬z(s) ≤ n     boundary at t is at most the number of true z
//	z(t) ∨ ¬z(t+1)                 true z form a prefix
//
// with one unit-weight soft clause ¬z(t) per step. The boundary follows
// Kinnersley: a vertex counts at step t when it is inside the prefix and has
// a neighbour outside it. The optimum number of true z is the vertex
// separation of the graph.
//
// The cardinality constraints are encoded with a totalizer (the default) or
// a sequential counter; see [Encoding].
//
// # Usage
//
//	arr, err := separation.Solve(ctx, g, separation.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(arr.Order, arr.Width)
//
// [Width] recomputes the width of any order by brute force and is used to
// check solver output.
//
// # Errors
//
// Encoding defects surface as ENCODING_ERROR, unsatisfiable models as
// INFEASIBLE_MODEL and oracle faults as ORACLE_FAILURE (pkg/errors). No
// partial arrangement is ever returned.
//
// # Concurrency
//
// A [Builder] and its [Pool] belong to a single solve and are not safe for
// concurrent use. Independent calls to [Solve] may run in parallel.
package separation
