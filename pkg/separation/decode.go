package separation

import (
	"slices"

	"github.com/matzehuels/hamcount/pkg/maxsat"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Arrangement is a total order of the vertices of a graph.
type Arrangement struct {
	// Order lists the vertices by rank.
	Order []string
	// Rank maps each vertex to its 1-based position.
	Rank map[string]int
	// Width is the separation width reported by the model: the number of
	// true z variables.
	Width int
	// Stats describes the model that produced the arrangement. It is zero
	// for arrangements not produced by Solve.
	Stats Stats
}

// Decode reads an arrangement out of an oracle assignment. The rank of v is
// the smallest step t with y(v,t) true. Decode fails with an encoding error
// unless the ranks form a permutation of 1..n.
func Decode(vertices []string, pool *Pool, a maxsat.Assignment) (*Arrangement, error) {
	n := len(vertices)
	if len(a) < pool.Len()+1 {
		return nil, hcerrors.New(hcerrors.ErrCodeOracle,
			"assignment covers %d variables, model has %d", len(a)-1, pool.Len())
	}

	rank := make(map[string]int, n)
	byRank := make([]string, n+1)
	for _, v := range vertices {
		r := 0
		for t := 1; t <= n; t++ {
			id, ok := pool.Lookup(Y(v, t))
			if !ok {
				return nil, hcerrors.New(hcerrors.ErrCodeEncoding, "no variable for %s", Y(v, t))
			}
			if a[id] {
				r = t
				break
			}
		}
		if r == 0 {
			return nil, hcerrors.New(hcerrors.ErrCodeEncoding, "vertex %q never enters the prefix", v)
		}
		if byRank[r] != "" {
			return nil, hcerrors.New(hcerrors.ErrCodeEncoding, "vertices %q and %q share rank %d", byRank[r], v, r)
		}
		byRank[r] = v
		rank[v] = r
	}

	width := 0
	for t := 1; t <= n; t++ {
		id, ok := pool.Lookup(Z(t))
		if !ok {
			return nil, hcerrors.New(hcerrors.ErrCodeEncoding, "no variable for %s", Z(t))
		}
		if a[id] {
			width++
		}
	}

	order := slices.Clone(byRank[1:])
	return &Arrangement{Order: order, Rank: rank, Width: width}, nil
}
