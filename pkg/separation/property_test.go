package separation

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/hamcount/pkg/graph"
)

// randomGraph builds a graph on 1..6 vertices from seed. Isolated vertices
// are kept so disconnected inputs are covered.
func randomGraph(seed int64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	n := 1 + rng.Intn(6)
	g := graph.New(fmt.Sprintf("random(%d)", seed))
	for i := range n {
		_ = g.AddVertex(fmt.Sprint(i))
	}
	density := rng.Float64()
	for i := range n {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < density {
				_ = g.AddEdge(fmt.Sprint(i), fmt.Sprint(j))
			}
		}
	}
	return g
}

// optimalWidth tries every order of g.
func optimalWidth(g *graph.Graph) int {
	vs := g.Vertices()
	best := len(vs)
	var permute func(k int)
	permute = func(k int) {
		if k == len(vs) {
			w, _ := Width(g, vs)
			best = min(best, w)
			return
		}
		for i := k; i < len(vs); i++ {
			vs[k], vs[i] = vs[i], vs[k]
			permute(k + 1)
			vs[k], vs[i] = vs[i], vs[k]
		}
	}
	permute(0)
	if len(vs) == 0 {
		return 0
	}
	return best
}

func TestSolveProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("order is a permutation of the vertices", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			arr, err := Solve(context.Background(), g, Options{})
			if err != nil {
				return false
			}
			_, err = g.Ranks(arr.Order)
			return err == nil
		},
		gen.Int64(),
	))

	properties.Property("reported width equals brute force of the order", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			arr, err := Solve(context.Background(), g, Options{})
			if err != nil {
				return false
			}
			w, err := Width(g, arr.Order)
			return err == nil && w == arr.Width
		},
		gen.Int64(),
	))

	properties.Property("width is optimal", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			arr, err := Solve(context.Background(), g, Options{Encoding: "seqcounter"})
			return err == nil && arr.Width == optimalWidth(g)
		},
		gen.Int64(),
	))

	properties.Property("backends agree on width", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			a, err := Solve(context.Background(), g, Options{})
			if err != nil {
				return false
			}
			b, err := Solve(context.Background(), g, Options{Stratified: true})
			return err == nil && a.Width == b.Width
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
