package graph

import (
	"errors"
	"fmt"
	"slices"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

var (
	// ErrInvalidVertexID is returned by [Graph.AddVertex] and [Graph.AddEdge]
	// when a vertex ID is empty or contains control characters.
	ErrInvalidVertexID = errors.New("invalid vertex ID")

	// ErrDuplicateVertex is returned by [Graph.AddVertex] when the vertex
	// already exists.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] for an edge from a vertex to
	// itself. Hamiltonian structures never use loops.
	ErrSelfLoop = errors.New("self loop")

	// ErrUnknownVertex is returned when an operation references a vertex that
	// is not part of the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrNotPermutation is returned by [Graph.Ranks] and friends when an
	// order does not list every vertex exactly once.
	ErrNotPermutation = errors.New("order is not a permutation of the vertices")
)

// Edge is an undirected edge. U is the endpoint that was named first when the
// edge was added.
type Edge struct {
	U string
	V string
}

// Other returns the endpoint of e that is not id.
func (e Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

// Graph is a finite simple undirected graph with string vertex IDs.
//
// Vertices and edges remember insertion order; every listing method returns
// them in that order so that orderings, hashes and edge lists are
// deterministic. The zero value is not usable - use New.
//
// Graph is not safe for concurrent mutation. Once built it is treated as
// read-only by the ordering and counting packages.
type Graph struct {
	name     string
	vertices []string
	index    map[string]int
	adj      map[string][]string
	edges    []Edge
	edgeSet  map[Edge]struct{}
}

// New creates an empty graph. The name is informational (used in logs,
// cache keys and rendered output) and may be empty.
func New(name string) *Graph {
	return &Graph{
		name:    name,
		index:   make(map[string]int),
		adj:     make(map[string][]string),
		edgeSet: make(map[Edge]struct{}),
	}
}

// Name returns the informational graph name.
func (g *Graph) Name() string { return g.name }

// SetName replaces the informational graph name.
func (g *Graph) SetName(name string) { g.name = name }

// AddVertex adds an isolated vertex.
// Returns ErrInvalidVertexID for malformed IDs and ErrDuplicateVertex if the
// vertex already exists.
func (g *Graph) AddVertex(id string) error {
	if err := hcerrors.ValidateVertexID(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVertexID, err)
	}
	if _, ok := g.index[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVertex, id)
	}
	g.addVertex(id)
	return nil
}

func (g *Graph) addVertex(id string) {
	g.index[id] = len(g.vertices)
	g.vertices = append(g.vertices, id)
}

// EnsureVertex adds the vertex if it is missing and reports whether it was
// added.
func (g *Graph) EnsureVertex(id string) (bool, error) {
	if _, ok := g.index[id]; ok {
		return false, nil
	}
	if err := g.AddVertex(id); err != nil {
		return false, err
	}
	return true, nil
}

// AddEdge adds the undirected edge {u, v}, creating missing endpoints.
// Adding an edge that already exists (in either direction) is a no-op.
// Returns ErrSelfLoop when u == v.
func (g *Graph) AddEdge(u, v string) error {
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if _, err := g.EnsureVertex(u); err != nil {
		return err
	}
	if _, err := g.EnsureVertex(v); err != nil {
		return err
	}
	if g.HasEdge(u, v) {
		return nil
	}
	e := Edge{U: u, V: v}
	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// HasVertex reports whether id is a vertex of g.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether {u, v} is an edge of g.
func (g *Graph) HasEdge(u, v string) bool {
	if _, ok := g.edgeSet[Edge{U: u, V: v}]; ok {
		return true
	}
	_, ok := g.edgeSet[Edge{U: v, V: u}]
	return ok
}

// Vertices returns a copy of the vertex IDs in insertion order.
func (g *Graph) Vertices() []string { return slices.Clone(g.vertices) }

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbors returns the neighbours of id in the order their edges were
// added. The returned slice is a read-only view.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of neighbours of id, or 0 if id is unknown.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Index returns the insertion position of id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Ranks validates that order lists every vertex exactly once and returns the
// 1-based rank of each vertex.
func (g *Graph) Ranks(order []string) (map[string]int, error) {
	if len(order) != len(g.vertices) {
		return nil, fmt.Errorf("%w: %d entries for %d vertices", ErrNotPermutation, len(order), len(g.vertices))
	}
	ranks := make(map[string]int, len(order))
	for i, v := range order {
		if !g.HasVertex(v) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, v)
		}
		if _, dup := ranks[v]; dup {
			return nil, fmt.Errorf("%w: %q listed twice", ErrNotPermutation, v)
		}
		ranks[v] = i + 1
	}
	return ranks, nil
}

// orderedEdges lists every edge once, grouped by its earlier endpoint in
// order: for each vertex u in order, the edges to neighbours that come after
// u, by ascending rank. order must already be validated by Ranks.
func (g *Graph) orderedEdges(order []string, ranks map[string]int) []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, u := range order {
		later := make([]string, 0, len(g.adj[u]))
		for _, w := range g.adj[u] {
			if ranks[w] > ranks[u] {
				later = append(later, w)
			}
		}
		slices.SortFunc(later, func(a, b string) int { return ranks[a] - ranks[b] })
		for _, w := range later {
			out = append(out, Edge{U: u, V: w})
		}
	}
	return out
}

// RankedEdges relabels g by order, vertex order[i] becoming i+1, and lists
// every edge once as a rank pair, grouped by the earlier endpoint in order
// and sorted by the later one. It also returns the rank map. The result is
// the edge list handed to the counting engine.
func (g *Graph) RankedEdges(order []string) ([][2]int, map[string]int, error) {
	ranks, err := g.Ranks(order)
	if err != nil {
		return nil, nil, err
	}
	edges := g.orderedEdges(order, ranks)
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{ranks[e.U], ranks[e.V]}
	}
	return out, ranks, nil
}
