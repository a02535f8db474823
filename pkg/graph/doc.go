// Package graph provides the undirected graph model and its JSON wire format.
//
// [Graph] is the input to every ordering strategy and to the counting
// orchestrator. It is a simple undirected graph with string vertex IDs that
// remembers insertion order, so that degree tie-breaking, edge lists and
// serialized bytes are deterministic.
//
// # Building Graphs
//
//	g := graph.New("p3")
//	_ = g.AddEdge("a", "b")   // endpoints are created on demand
//	_ = g.AddEdge("b", "c")
//	_ = g.AddVertex("lonely") // isolated vertices need AddVertex
//
// Self loops are rejected with [ErrSelfLoop]; repeated edges are ignored.
//
// # Orders
//
// An order is a slice listing every vertex exactly once. [Graph.Ranks]
// validates it, [Graph.Relabel] renames vertices to "1".."n" and
// [Graph.RankedEdges] produces the edge list handed to the counting engine:
// for each vertex in order, its edges to later neighbours by ascending rank.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "name": "grid-2x2",
//	  "nodes": [{"id": "0,0"}, {"id": "0,1"}],
//	  "edges": [{"from": "0,0", "to": "0,1"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("grid.json")        // File → Graph
//	data, _ := graph.MarshalGraph(g)                // Graph → []byte
//	edges, ranks, _ := g.RankedEdges(order)         // Graph → engine input
//
// # Concurrency
//
// A Graph is safe for concurrent reads but not concurrent writes.
package graph
