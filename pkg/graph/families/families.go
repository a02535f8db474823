// Package families generates the structured graph families whose
// Hamiltonian paths and cycles hamcount counts.
//
// Every generator is deterministic: vertices and edges are inserted in the
// same order on every call, so identity orderings and cache keys are stable.
//
// Vertex IDs:
//
//	grid, knight   "row,col" (0-based)
//	hamming        bit string of length n, e.g. "0110"
//	squares        "1".."n"
//	path, cycle,
//	complete       "0".."n-1"
package families

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
	"github.com/matzehuels/hamcount/pkg/graph"
)

// Family describes one named graph family.
type Family struct {
	// Name is the identifier used on the command line and in cache keys.
	Name string
	// Description is a one-line summary for help output.
	Description string
	// Limit bounds the size parameter; generators beyond it would not fit
	// any ordering or counting budget.
	Limit int
	// Rectangular reports whether the family takes a second size parameter.
	Rectangular bool

	build func(n, m int) *graph.Graph
}

// Build generates the family member of size n. The second parameter m is
// only used by rectangular families; zero means "same as n".
func (f Family) Build(n, m int) (*graph.Graph, error) {
	if err := hcerrors.ValidateFamilySize(f.Name, n, f.Limit); err != nil {
		return nil, err
	}
	if f.Rectangular && m != 0 {
		if err := hcerrors.ValidateFamilySize(f.Name, m, f.Limit); err != nil {
			return nil, err
		}
	}
	return f.build(n, m), nil
}

var registry = map[string]Family{
	"grid": {
		Name: "grid", Description: "n×m rook-step grid", Limit: 64, Rectangular: true,
		build: Grid,
	},
	"knight": {
		Name: "knight", Description: "knight moves on an n×n board, unreachable squares kept isolated (knight 3 counts 0)", Limit: 32,
		build: func(n, _ int) *graph.Graph { return Knight(n) },
	},
	"hamming": {
		Name: "hamming", Description: "n-dimensional hypercube", Limit: 16,
		build: func(n, _ int) *graph.Graph { return Hamming(n) },
	},
	"squares": {
		Name: "squares", Description: "1..n joined when the sum is a square, numbers without a partner kept isolated", Limit: 4096,
		build: func(n, _ int) *graph.Graph { return SquareSum(n) },
	},
	"path": {
		Name: "path", Description: "path on n vertices", Limit: 4096,
		build: func(n, _ int) *graph.Graph { return Path(n) },
	},
	"cycle": {
		Name: "cycle", Description: "cycle on n vertices", Limit: 4096,
		build: func(n, _ int) *graph.Graph { return Cycle(n) },
	},
	"complete": {
		Name: "complete", Description: "complete graph on n vertices", Limit: 256,
		build: func(n, _ int) *graph.Graph { return Complete(n) },
	},
}

// aliases maps alternative names accepted on the command line.
var aliases = map[string]string{
	"knights":   "knight",
	"hypercube": "hamming",
	"cube":      "hamming",
	"square":    "squares",
	"rook":      "grid",
}

// Lookup returns the family registered under name (case-insensitive).
func Lookup(name string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	f, ok := registry[key]
	if !ok {
		return Family{}, hcerrors.New(hcerrors.ErrCodeInvalidFamily,
			"unknown family %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the registered family names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Generators
// =============================================================================

func cell(r, c int) string { return strconv.Itoa(r) + "," + strconv.Itoa(c) }

// Grid returns the n×m grid graph with rook-step adjacency. m == 0 means a
// square n×n grid.
func Grid(n, m int) *graph.Graph {
	if m == 0 {
		m = n
	}
	g := graph.New(fmt.Sprintf("grid(%d,%d)", n, m))
	for r := range n {
		for c := range m {
			_, _ = g.EnsureVertex(cell(r, c))
		}
	}
	for r := range n {
		for c := range m {
			if c+1 < m {
				_ = g.AddEdge(cell(r, c), cell(r, c+1))
			}
			if r+1 < n {
				_ = g.AddEdge(cell(r, c), cell(r+1, c))
			}
		}
	}
	return g
}

var knightMoves = [8][2]int{
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
}

// Knight returns the knight's-move graph of an n×n board.
func Knight(n int) *graph.Graph {
	g := graph.New(fmt.Sprintf("knight(%d)", n))
	for r := range n {
		for c := range n {
			_, _ = g.EnsureVertex(cell(r, c))
		}
	}
	for r := range n {
		for c := range n {
			for _, d := range knightMoves {
				rr, cc := r+d[0], c+d[1]
				if rr >= 0 && rr < n && cc >= 0 && cc < n {
					_ = g.AddEdge(cell(r, c), cell(rr, cc))
				}
			}
		}
	}
	return g
}

// Hamming returns the n-dimensional hypercube: bit strings of length n
// joined when they differ in exactly one position.
func Hamming(n int) *graph.Graph {
	g := graph.New(fmt.Sprintf("hamming(%d)", n))
	label := func(x int) string {
		s := strconv.FormatInt(int64(x), 2)
		return strings.Repeat("0", n-len(s)) + s
	}
	for x := range 1 << n {
		_, _ = g.EnsureVertex(label(x))
	}
	for x := range 1 << n {
		for bit := n - 1; bit >= 0; bit-- {
			_ = g.AddEdge(label(x), label(x^(1<<bit)))
		}
	}
	return g
}

// SquareSum returns the square-sum graph on 1..n: i and j are adjacent when
// i+j is a perfect square. Its Hamiltonian paths are the square chains.
func SquareSum(n int) *graph.Graph {
	g := graph.New(fmt.Sprintf("squares(%d)", n))
	for i := 1; i <= n; i++ {
		_, _ = g.EnsureVertex(strconv.Itoa(i))
	}
	for i := 1; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			if isSquare(i + j) {
				_ = g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
			}
		}
	}
	return g
}

func isSquare(x int) bool {
	r := int(math.Sqrt(float64(x)))
	for r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x {
		r++
	}
	return r*r == x
}

// Path returns the path graph on n vertices.
func Path(n int) *graph.Graph {
	g := graph.New(fmt.Sprintf("path(%d)", n))
	for i := range n {
		_, _ = g.EnsureVertex(strconv.Itoa(i))
	}
	for i := 0; i+1 < n; i++ {
		_ = g.AddEdge(strconv.Itoa(i), strconv.Itoa(i+1))
	}
	return g
}

// Cycle returns the cycle graph on n vertices. For n < 3 it degenerates to
// a path since the graph is simple.
func Cycle(n int) *graph.Graph {
	g := Path(n)
	g.SetName(fmt.Sprintf("cycle(%d)", n))
	if n >= 3 {
		_ = g.AddEdge(strconv.Itoa(n-1), "0")
	}
	return g
}

// Complete returns the complete graph on n vertices.
func Complete(n int) *graph.Graph {
	g := graph.New(fmt.Sprintf("complete(%d)", n))
	for i := range n {
		_, _ = g.EnsureVertex(strconv.Itoa(i))
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			_ = g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
		}
	}
	return g
}
