// Package pkg provides the core libraries of hamcount, a counter of
// Hamiltonian paths and cycles.
//
// # Overview
//
// Counting Hamiltonian paths is #P-hard, but a frontier dynamic program runs
// in time exponential only in the vertex separation of the order in which it
// visits the vertices. hamcount therefore splits the work in two: find a good
// vertex order, then count along it. The pkg directory is organized as:
//
//  1. [graph], [graph/families] - the undirected graph model and generators
//  2. [separation], [maxsat], [ordering] - vertex orders, exact and greedy
//  3. [enumerate], [counting] - the frontier engine and the orchestrator
//  4. [cache], [results], [config], [observability] - infrastructure
//  5. [render] - arrangement diagrams (DOT, SVG)
//
// # Architecture
//
// The typical data flow:
//
//	graph family or graph.json
//	         ↓
//	    [ordering] (identity, degree, or exact via [separation] + [maxsat])
//	         ↓
//	    [counting] (relabel by rank, cache lookup)
//	         ↓
//	    [enumerate] (frontier dynamic program over big integers)
//	         ↓
//	    count, width, stats → [results] ledger
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/hamcount/pkg/counting"
//	    "github.com/matzehuels/hamcount/pkg/graph/families"
//	    "github.com/matzehuels/hamcount/pkg/ordering"
//	)
//
//	g := families.Knight(6)
//	c := counting.NewCounter(nil, nil, nil, nil)
//	res, _ := c.Count(context.Background(), g, counting.Params{
//	    Strategy: ordering.StrategyPathWidth,
//	})
//	fmt.Println(res.Count, res.Width)
//
// # Main Packages
//
// [separation] - Encodes "find a vertex order of minimum separation width" as
// weighted MaxSAT: y(v,t) marks v placed by step t, u(v,t) marks v on the
// boundary at step t, and one soft clause per width unit is minimized.
// Cardinality constraints use a totalizer or a sequential counter.
//
// [maxsat] - Oracle adapters: gophersat's weighted MaxSAT solver, and a
// stratified linear search over the gini SAT solver.
//
// [ordering] - Strategies: default (insertion order), sorted, increasing and
// decreasing degree, dfs and bfs traversals, and the exact pathwidth order.
//
// [enumerate] - The counting engine. Paths are counted as cycles through an
// apex vertex; states are mate arrays over the current frontier.
//
// [counting] - Orders, relabels and counts a graph with caching of both the
// order and the count, and counts family ranges concurrently.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test -short ./pkg/...           # Skip the large instances
//	go test -run Example ./pkg/...     # Examples only
package pkg
