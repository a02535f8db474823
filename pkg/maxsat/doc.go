// Package maxsat defines weighted partial MaxSAT formulas and the optimizing
// oracles that solve them.
//
// A [Formula] holds hard clauses, which every model must satisfy, and
// weighted soft clauses. An [Oracle] returns one [Assignment] that satisfies
// all hard clauses and minimizes the total weight of violated soft clauses.
// Literals use DIMACS conventions: variable i is the literal i, its negation
// is -i, and variables are numbered from 1.
//
// # Backends
//
//   - [Gophersat]: linear model-improving search of github.com/crillab/gophersat
//   - [Stratified]: incremental github.com/go-air/gini search that bounds each
//     weight class in turn, heaviest first, with sorting-network cardinality
//     constraints
//
// Both return optimal assignments; Stratified only changes the search order.
//
// # Errors
//
// Oracles report an unsatisfiable hard part with an INFEASIBLE_MODEL error
// and solver faults with ORACLE_FAILURE (see pkg/errors). Neither is retried.
//
// # Testing
//
// [Func] adapts a plain function to the Oracle interface, which is how tests
// script assignments without running a solver.
package maxsat
