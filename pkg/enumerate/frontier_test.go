package enumerate

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/graph/families"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func universe(t *testing.T, g *graph.Graph, tr Traversal) Universe {
	t.Helper()
	edges, _, err := g.RankedEdges(g.Vertices())
	require.NoError(t, err)
	u, err := NewUniverse(g.VertexCount(), edges, tr)
	require.NoError(t, err)
	return u
}

func count(t *testing.T, u Universe, q Query) int64 {
	t.Helper()
	n, err := NewFrontier(nil).Count(context.Background(), u, q)
	require.NoError(t, err)
	require.True(t, n.IsInt64())
	return n.Int64()
}

func TestFrontierKnownCounts(t *testing.T) {
	tests := []struct {
		name   string
		g      *graph.Graph
		paths  int64
		cycles int64
	}{
		{"K1", families.Complete(1), 1, 0},
		{"K2", families.Complete(2), 1, 0},
		{"K3", families.Complete(3), 3, 1},
		{"K4", families.Complete(4), 12, 3},
		{"P4", families.Path(4), 1, 0},
		{"C5", families.Cycle(5), 5, 1},
		{"Grid2x4", families.Grid(2, 4), 14, 1},
		{"Grid3", families.Grid(3, 3), 20, 0},
		{"Grid4", families.Grid(4, 4), 276, 6},
		{"Hamming3", families.Hamming(3), 72, 6},
		{"Knight3", families.Knight(3), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := universe(t, tt.g, TraversalAsIs)
			assert.Equal(t, tt.paths, count(t, u, Query{}), "paths")
			assert.Equal(t, tt.cycles, count(t, u, Query{Cycle: true}), "cycles")
		})
	}
}

func TestFrontierSquareSums(t *testing.T) {
	tests := []struct {
		n    int
		want int64
	}{
		{15, 1},
		{16, 1},
		{17, 1},
		{18, 0},
		{23, 3},
		{25, 10},
	}
	for _, tt := range tests {
		u := universe(t, families.SquareSum(tt.n), TraversalAsIs)
		assert.Equal(t, tt.want, count(t, u, Query{}), "squares %d", tt.n)
	}
}

func TestFrontierKnight5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 5x5 knight graph in short mode")
	}
	u := universe(t, families.Knight(5), TraversalBFS)
	assert.Equal(t, int64(864), count(t, u, Query{}))
}

func TestFrontierEndpoints(t *testing.T) {
	k4 := universe(t, families.Complete(4), TraversalAsIs)
	assert.Equal(t, int64(6), count(t, k4, Query{Source: 1}))
	assert.Equal(t, int64(6), count(t, k4, Query{Sink: 4}))
	assert.Equal(t, int64(2), count(t, k4, Query{Source: 1, Sink: 2}))

	p3 := universe(t, families.Path(3), TraversalAsIs)
	assert.Equal(t, int64(0), count(t, p3, Query{Source: 2}))
	assert.Equal(t, int64(1), count(t, p3, Query{Source: 3}))
	assert.Equal(t, int64(1), count(t, p3, Query{Source: 1, Sink: 3}))
	assert.Equal(t, int64(0), count(t, p3, Query{Source: 1, Sink: 2}))

	k1 := universe(t, families.Complete(1), TraversalAsIs)
	assert.Equal(t, int64(1), count(t, k1, Query{Source: 1}))
}

func TestFrontierDisconnected(t *testing.T) {
	g := graph.New("two-edges")
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("c", "d")
	u := universe(t, g, TraversalAsIs)
	assert.Equal(t, int64(0), count(t, u, Query{}))

	iso := families.Path(3)
	_ = iso.AddVertex("lonely")
	u = universe(t, iso, TraversalAsIs)
	assert.Equal(t, int64(0), count(t, u, Query{}))
}

func TestFrontierEmpty(t *testing.T) {
	u, err := NewUniverse(0, nil, TraversalAsIs)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count(t, u, Query{}))
	assert.Equal(t, int64(0), count(t, u, Query{Cycle: true}))
}

func TestFrontierTraversalsAgree(t *testing.T) {
	g := families.Grid(3, 4)
	for _, tr := range []Traversal{TraversalAsIs, TraversalDFS, TraversalBFS} {
		u := universe(t, g, tr)
		assert.Equal(t, int64(62), count(t, u, Query{}), "%s paths", tr)
		assert.Equal(t, int64(2), count(t, u, Query{Cycle: true}), "%s cycles", tr)
	}
}

func TestFrontierLargeCountIsExact(t *testing.T) {
	n := 8
	u := universe(t, families.Complete(n), TraversalAsIs)
	got, err := NewFrontier(nil).Count(context.Background(), u, Query{})
	require.NoError(t, err)

	// n!/2 undirected Hamiltonian paths
	want := new(big.Int).MulRange(3, int64(n))
	assert.Zero(t, want.Cmp(got), "got %s, want %s", got, want)
}

func TestFrontierStats(t *testing.T) {
	u := universe(t, families.Grid(3, 3), TraversalAsIs)
	_, stats, err := NewFrontier(nil).CountStats(context.Background(), u, Query{Cycle: true})
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Edges)
	assert.Positive(t, stats.PeakFrontier)
	assert.LessOrEqual(t, stats.PeakFrontier, 9)
}

func TestFrontierQueryErrors(t *testing.T) {
	u := universe(t, families.Complete(4), TraversalAsIs)
	tests := []struct {
		name string
		q    Query
	}{
		{"CycleWithSource", Query{Cycle: true, Source: 1}},
		{"CycleWithSink", Query{Cycle: true, Sink: 2}},
		{"SameEnds", Query{Source: 2, Sink: 2}},
		{"SourceOutOfRange", Query{Source: 5}},
		{"NegativeSink", Query{Sink: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrontier(nil).Count(context.Background(), u, tt.q)
			assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestFrontierCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := universe(t, families.Grid(3, 3), TraversalAsIs)
	_, err := NewFrontier(nil).Count(ctx, u, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

// brute counts by walking every vertex permutation.
func brute(n int, edges [][2]int, q Query) int64 {
	switch {
	case n == 0:
		return 0
	case n == 1:
		if q.Cycle {
			return 0
		}
		return 1
	}
	adj := make([][]bool, n+1)
	for i := range adj {
		adj[i] = make([]bool, n+1)
	}
	for _, e := range edges {
		adj[e[0]][e[1]], adj[e[1]][e[0]] = true, true
	}

	perm := make([]int, n)
	used := make([]bool, n+1)
	var total int64
	var walk func(k int)
	walk = func(k int) {
		if k == n {
			switch {
			case q.Cycle:
				if adj[perm[n-1]][perm[0]] {
					total++
				}
			case q.Source != 0 && perm[0] != q.Source:
			case q.Sink != 0 && perm[n-1] != q.Sink:
			default:
				total++
			}
			return
		}
		for v := 1; v <= n; v++ {
			if used[v] || k > 0 && !adj[perm[k-1]][v] {
				continue
			}
			used[v], perm[k] = true, v
			walk(k + 1)
			used[v] = false
		}
	}
	walk(0)

	switch {
	case q.Cycle:
		return total / int64(2*n)
	case q.Source != 0 || q.Sink != 0:
		return total
	default:
		return total / 2
	}
}

func randomUniverse(seed int64) (int, [][2]int) {
	rng := rand.New(rand.NewSource(seed))
	n := 1 + rng.Intn(7)
	var edges [][2]int
	for a := 1; a <= n; a++ {
		for b := a + 1; b <= n; b++ {
			if rng.Intn(3) > 0 {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	return n, edges
}

func TestFrontierMatchesBruteForce(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 150
	properties := gopter.NewProperties(params)

	check := func(seed int64, tr Traversal, q func(n int) Query) bool {
		n, edges := randomUniverse(seed)
		u, err := NewUniverse(n, edges, tr)
		if err != nil {
			return false
		}
		query := q(n)
		got, err := NewFrontier(nil).Count(context.Background(), u, query)
		if err != nil {
			return false
		}
		return got.Cmp(big.NewInt(brute(n, edges, query))) == 0
	}

	properties.Property("paths", prop.ForAll(
		func(seed int64) bool {
			return check(seed, TraversalAsIs, func(int) Query { return Query{} })
		},
		gen.Int64(),
	))
	properties.Property("cycles under dfs", prop.ForAll(
		func(seed int64) bool {
			return check(seed, TraversalDFS, func(int) Query { return Query{Cycle: true} })
		},
		gen.Int64(),
	))
	properties.Property("fixed source under bfs", prop.ForAll(
		func(seed int64) bool {
			return check(seed, TraversalBFS, func(n int) Query { return Query{Source: 1} })
		},
		gen.Int64(),
	))
	properties.Property("fixed ends", prop.ForAll(
		func(seed int64) bool {
			return check(seed, TraversalAsIs, func(n int) Query {
				if n < 2 {
					return Query{}
				}
				return Query{Source: n, Sink: 1}
			})
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
