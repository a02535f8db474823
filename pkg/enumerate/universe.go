package enumerate

import (
	"context"
	"math/big"
	"strings"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Engine counts Hamiltonian structures of a universe.
type Engine interface {
	Count(ctx context.Context, u Universe, q Query) (*big.Int, error)
}

// Traversal is a hint on how the engine should walk the universe.
type Traversal string

const (
	TraversalAsIs Traversal = "as-is" // edges in the given order
	TraversalDFS  Traversal = "dfs"   // edges regrouped by depth-first visit order
	TraversalBFS  Traversal = "bfs"   // edges regrouped by breadth-first visit order
)

// ParseTraversal resolves a traversal name. The empty name is as-is.
func ParseTraversal(name string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "as-is", "asis", "plain":
		return TraversalAsIs, nil
	case "dfs":
		return TraversalDFS, nil
	case "bfs":
		return TraversalBFS, nil
	}
	return "", hcerrors.New(hcerrors.ErrCodeInvalidInput, "unknown traversal %q (must be one of: as-is, dfs, bfs)", name)
}

// Universe is a graph on vertices 1..Vertices with an edge processing order.
type Universe struct {
	Vertices  int
	Edges     [][2]int
	Traversal Traversal
}

// NewUniverse validates edges against n vertices: endpoints must lie in
// 1..n, loops and repeated edges are rejected.
func NewUniverse(n int, edges [][2]int, t Traversal) (Universe, error) {
	if n < 0 {
		return Universe{}, hcerrors.New(hcerrors.ErrCodeInvalidInput, "negative vertex count %d", n)
	}
	if t == "" {
		t = TraversalAsIs
	}
	if _, err := ParseTraversal(string(t)); err != nil {
		return Universe{}, err
	}
	seen := make(map[[2]int]bool, len(edges))
	for i, e := range edges {
		a, b := e[0], e[1]
		if a < 1 || a > n || b < 1 || b > n {
			return Universe{}, hcerrors.New(hcerrors.ErrCodeInvalidInput, "edge %d (%d,%d) outside 1..%d", i, a, b, n)
		}
		if a == b {
			return Universe{}, hcerrors.New(hcerrors.ErrCodeInvalidInput, "edge %d is a loop at %d", i, a)
		}
		k := [2]int{min(a, b), max(a, b)}
		if seen[k] {
			return Universe{}, hcerrors.New(hcerrors.ErrCodeInvalidInput, "edge %d (%d,%d) repeated", i, a, b)
		}
		seen[k] = true
	}
	return Universe{Vertices: n, Edges: edges, Traversal: t}, nil
}

// Ordered returns the edges in processing order. For DFS and BFS the
// vertices are visited from the first endpoint of the first edge, taking
// neighbours in edge order and restarting at the next unvisited vertex of
// the edge list for further components; each visited vertex then emits its
// not yet emitted edges.
func (u Universe) Ordered() [][2]int {
	if u.Traversal != TraversalDFS && u.Traversal != TraversalBFS || len(u.Edges) == 0 {
		return append([][2]int(nil), u.Edges...)
	}

	incident := make([][]int, u.Vertices+1)
	var starts []int
	for i, e := range u.Edges {
		for _, v := range e {
			if len(incident[v]) == 0 {
				starts = append(starts, v)
			}
			incident[v] = append(incident[v], i)
		}
	}
	other := func(i, v int) int {
		if u.Edges[i][0] == v {
			return u.Edges[i][1]
		}
		return u.Edges[i][0]
	}

	visited := make([]bool, u.Vertices+1)
	var visit []int
	for _, s := range starts {
		if visited[s] {
			continue
		}
		if u.Traversal == TraversalBFS {
			visited[s] = true
			queue := []int{s}
			for len(queue) > 0 {
				v := queue[0]
				queue = queue[1:]
				visit = append(visit, v)
				for _, i := range incident[v] {
					if w := other(i, v); !visited[w] {
						visited[w] = true
						queue = append(queue, w)
					}
				}
			}
			continue
		}
		stack := []int{s}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v] {
				continue
			}
			visited[v] = true
			visit = append(visit, v)
			inc := incident[v]
			for j := len(inc) - 1; j >= 0; j-- {
				if w := other(inc[j], v); !visited[w] {
					stack = append(stack, w)
				}
			}
		}
	}

	emitted := make([]bool, len(u.Edges))
	out := make([][2]int, 0, len(u.Edges))
	for _, v := range visit {
		for _, i := range incident[v] {
			if !emitted[i] {
				emitted[i] = true
				out = append(out, u.Edges[i])
			}
		}
	}
	return out
}

// Query selects what to count. Source and Sink are vertex numbers, 0 when
// unset.
type Query struct {
	Source int
	Sink   int
	Cycle  bool
}

// Mode returns "cycles" or "paths".
func (q Query) Mode() string {
	if q.Cycle {
		return "cycles"
	}
	return "paths"
}

// Validate checks q against a universe of n vertices.
func (q Query) Validate(n int) error {
	if q.Cycle && (q.Source != 0 || q.Sink != 0) {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "source and sink cannot be fixed when counting cycles")
	}
	if q.Source != 0 && q.Source == q.Sink {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "source and sink are both %d", q.Source)
	}
	for _, v := range []int{q.Source, q.Sink} {
		if v < 0 || v > n {
			return hcerrors.New(hcerrors.ErrCodeInvalidInput, "endpoint %d outside 1..%d", v, n)
		}
	}
	return nil
}
