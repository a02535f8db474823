package enumerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func TestParseTraversal(t *testing.T) {
	tests := []struct {
		in   string
		want Traversal
	}{
		{"", TraversalAsIs},
		{"as-is", TraversalAsIs},
		{"DFS", TraversalDFS},
		{" bfs ", TraversalBFS},
	}
	for _, tt := range tests {
		got, err := ParseTraversal(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTraversal("spiral")
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidInput))
}

func TestNewUniverseRejects(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges [][2]int
	}{
		{"Negative", -1, nil},
		{"OutOfRange", 3, [][2]int{{1, 4}}},
		{"Zero", 3, [][2]int{{0, 1}}},
		{"Loop", 3, [][2]int{{2, 2}}},
		{"Repeated", 3, [][2]int{{1, 2}, {2, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUniverse(tt.n, tt.edges, TraversalAsIs)
			assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestOrdered(t *testing.T) {
	// star-shaped path 3-1-2 with a pendant 4 on 2, listed out of order
	edges := [][2]int{{2, 4}, {1, 3}, {1, 2}}

	tests := []struct {
		tr   Traversal
		want [][2]int
	}{
		{TraversalAsIs, [][2]int{{2, 4}, {1, 3}, {1, 2}}},
		// visit 2, 4, 1, 3
		{TraversalDFS, [][2]int{{2, 4}, {1, 2}, {1, 3}}},
		// visit 2, 4, 1, 3
		{TraversalBFS, [][2]int{{2, 4}, {1, 2}, {1, 3}}},
	}
	for _, tt := range tests {
		u, err := NewUniverse(4, edges, tt.tr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, u.Ordered(), string(tt.tr))
	}
}

func TestOrderedVisitsComponents(t *testing.T) {
	edges := [][2]int{{1, 2}, {3, 4}, {2, 5}}
	u, err := NewUniverse(5, edges, TraversalBFS)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 5}, {3, 4}}, u.Ordered())
}

func TestQueryMode(t *testing.T) {
	assert.Equal(t, "paths", Query{}.Mode())
	assert.Equal(t, "cycles", Query{Cycle: true}.Mode())
}
