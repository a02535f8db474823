package separation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/graph/families"
	"github.com/matzehuels/hamcount/pkg/maxsat"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func edges(name string, pairs ...[2]string) *graph.Graph {
	g := graph.New(name)
	for _, p := range pairs {
		_ = g.AddEdge(p[0], p[1])
	}
	return g
}

func star(leaves int) *graph.Graph {
	g := graph.New("star")
	for i := range leaves {
		_ = g.AddEdge("hub", fmt.Sprint("leaf", i))
	}
	return g
}

func single() *graph.Graph {
	g := graph.New("k1")
	_ = g.AddVertex("only")
	return g
}

var solverConfigs = map[string]Options{
	"gophersat/totalizer":   {},
	"gophersat/seqcounter":  {Encoding: "seqcounter"},
	"stratified/totalizer":  {Stratified: true},
	"stratified/seqcounter": {Stratified: true, Encoding: "seqcounter"},
}

func TestSolveKnownWidths(t *testing.T) {
	tests := []struct {
		name  string
		graph *graph.Graph
		want  int
	}{
		{"SingleVertex", single(), 0},
		{"Path2", families.Path(2), 1},
		{"Path6", families.Path(6), 1},
		{"Cycle3", families.Cycle(3), 2},
		{"Cycle6", families.Cycle(6), 2},
		{"Complete4", families.Complete(4), 3},
		{"Complete5", families.Complete(5), 4},
		{"TwoDisjointEdges", edges("2k2", [2]string{"a", "b"}, [2]string{"c", "d"}), 1},
		{"Star", star(4), 1},
		{"Grid3", families.Grid(3, 3), 3},
		{"Grid2x4", families.Grid(2, 4), 2},
	}

	for _, tt := range tests {
		for name, opts := range solverConfigs {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				arr, err := Solve(context.Background(), tt.graph, opts)
				require.NoError(t, err)
				assert.Equal(t, tt.want, arr.Width)
				require.Len(t, arr.Order, tt.graph.VertexCount())

				ranks, err := tt.graph.Ranks(arr.Order)
				require.NoError(t, err, "order is not a permutation")
				assert.Equal(t, ranks, arr.Rank)

				got, err := Width(tt.graph, arr.Order)
				require.NoError(t, err)
				assert.Equal(t, arr.Width, got, "reported width differs from brute force")
			})
		}
	}
}

func TestSolveEmptyGraph(t *testing.T) {
	called := false
	oracle := maxsat.Func(func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) {
		called = true
		return nil, nil
	})
	arr, err := Solve(context.Background(), graph.New("empty"), Options{Oracle: oracle})
	require.NoError(t, err)
	assert.Empty(t, arr.Order)
	assert.Zero(t, arr.Width)
	assert.False(t, called, "oracle must not run for an empty graph")
}

func TestSolveIdempotentWidth(t *testing.T) {
	g := families.Knight(3)
	first, err := Solve(context.Background(), g, Options{})
	require.NoError(t, err)
	for range 3 {
		again, err := Solve(context.Background(), g, Options{})
		require.NoError(t, err)
		assert.Equal(t, first.Width, again.Width)
	}
}

func TestSolveOracleErrors(t *testing.T) {
	g := families.Path(3)
	boom := errors.New("out of memory")

	tests := []struct {
		name     string
		oracle   maxsat.Func
		wantCode hcerrors.Code
	}{
		{
			name: "PlainErrorBecomesOracleFailure",
			oracle: func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) {
				return nil, boom
			},
			wantCode: hcerrors.ErrCodeOracle,
		},
		{
			name: "InfeasiblePropagates",
			oracle: func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) {
				return nil, hcerrors.New(hcerrors.ErrCodeInfeasible, "scripted")
			},
			wantCode: hcerrors.ErrCodeInfeasible,
		},
		{
			name: "ShortAssignment",
			oracle: func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) {
				return maxsat.Assignment{false, true}, nil
			},
			wantCode: hcerrors.ErrCodeOracle,
		},
		{
			name: "AllFalseAssignment",
			oracle: func(_ context.Context, f *maxsat.Formula) (maxsat.Assignment, error) {
				return make(maxsat.Assignment, f.NumVars+1), nil
			},
			wantCode: hcerrors.ErrCodeEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			oracle := maxsat.Func(func(ctx context.Context, f *maxsat.Formula) (maxsat.Assignment, error) {
				calls++
				return tt.oracle(ctx, f)
			})
			arr, err := Solve(context.Background(), g, Options{Oracle: oracle})
			assert.Nil(t, arr)
			assert.Equal(t, tt.wantCode, hcerrors.GetCode(err), "err = %v", err)
			assert.Equal(t, 1, calls, "oracle must not be retried")
		})
	}

	t.Run("CauseIsKept", func(t *testing.T) {
		_, err := Solve(context.Background(), g, Options{Oracle: maxsat.Func(
			func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) { return nil, boom })})
		assert.ErrorIs(t, err, boom)
	})
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder(families.Path(3), EncodingTotalizer)
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeEncoding))
}

func TestBuilderStats(t *testing.T) {
	g := families.Path(3)
	b := NewBuilder(g, "")
	f, err := b.Build()
	require.NoError(t, err)

	s := b.Stats()
	assert.Equal(t, 3, s.Vertices)
	assert.Equal(t, EncodingTotalizer, s.Encoding)
	assert.Equal(t, f.NumVars, s.Variables)
	assert.Equal(t, b.Pool().Len(), s.Variables)
	assert.Equal(t, 3, s.Soft)

	// y, u for every vertex and step plus one z per step.
	assert.GreaterOrEqual(t, s.Variables, 2*3*3+3)
	for t2 := 1; t2 <= 3; t2++ {
		_, ok := b.Pool().Lookup(Z(t2))
		assert.True(t, ok, "z(%d) missing", t2)
	}
}

func TestDecode(t *testing.T) {
	vertices := []string{"a", "b"}
	p := NewPool()
	for step := 1; step <= 2; step++ {
		for _, v := range vertices {
			p.ID(Y(v, step))
		}
		p.ID(Z(step))
	}
	assign := func(keys ...Key) maxsat.Assignment {
		a := make(maxsat.Assignment, p.Len()+1)
		for _, k := range keys {
			id, _ := p.Lookup(k)
			a[id] = true
		}
		return a
	}

	arr, err := Decode(vertices, p, assign(Y("b", 1), Y("b", 2), Y("a", 2), Z(1)))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, arr.Order)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, arr.Rank)
	assert.Equal(t, 1, arr.Width)

	_, err = Decode(vertices, p, assign(Y("a", 1), Y("b", 1)))
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeEncoding), "shared rank: %v", err)

	_, err = Decode(vertices, p, assign(Y("a", 1)))
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeEncoding), "missing rank: %v", err)

	_, err = Decode([]string{"a", "b", "c"}, p, assign(Y("a", 1), Y("b", 2)))
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeEncoding), "unknown vertex: %v", err)
}

func TestWidthReference(t *testing.T) {
	g := families.Complete(4)
	w, err := Width(g, []string{"0", "1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, w)

	p := families.Path(5)
	w, err = Width(p, []string{"0", "1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	w, err = Width(p, []string{"2", "0", "4", "1", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, w)

	// Outer boundary of a star listed leaves first grows with every leaf.
	s := star(3)
	w, err = OuterWidth(s, []string{"leaf0", "leaf1", "leaf2", "hub"})
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	w, err = Width(s, []string{"leaf0", "leaf1", "leaf2", "hub"})
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	w, err = OuterWidth(s, []string{"hub", "leaf0", "leaf1", "leaf2"})
	require.NoError(t, err)
	assert.Equal(t, 3, w)

	_, err = Width(p, []string{"0"})
	assert.ErrorIs(t, err, graph.ErrNotPermutation)
}

func TestOptionsOracle(t *testing.T) {
	o, err := Options{}.oracle()
	require.NoError(t, err)
	assert.IsType(t, &maxsat.Gophersat{}, o)

	o, err = Options{Stratified: true}.oracle()
	require.NoError(t, err)
	assert.IsType(t, &maxsat.Stratified{}, o)

	custom := maxsat.Func(func(context.Context, *maxsat.Formula) (maxsat.Assignment, error) { return nil, nil })
	o, err = Options{Oracle: custom, Stratified: true}.oracle()
	require.NoError(t, err)
	assert.IsType(t, custom, o)
}
