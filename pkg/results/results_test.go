package results

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/ordering"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func sampleResult(graph string, count int64, cycle bool) *counting.Result {
	return &counting.Result{
		Graph:     graph,
		GraphHash: "abc",
		Params:    counting.Params{Strategy: ordering.StrategyBFS, Traversal: "bfs", Cycle: cycle},
		Count:     big.NewInt(count),
		Width:     3,
		Stats: counting.Stats{
			Vertices:  9,
			Edges:     12,
			OrderTime: 1500 * time.Millisecond,
			CountTime: 20 * time.Millisecond,
		},
	}
}

func TestNewRecord(t *testing.T) {
	run := NewRunID()
	r := NewRecord(run, sampleResult("grid(3x3)", 20, false))

	assert.Equal(t, run, r.RunID)
	assert.NotEmpty(t, r.ID)
	assert.NotEqual(t, run, r.ID)
	assert.Equal(t, "20", r.Count)
	assert.Equal(t, "paths", r.Mode)
	assert.Equal(t, "bfs", r.Strategy)
	assert.Equal(t, int64(1500), r.OrderMillis)
	assert.Equal(t, 9, r.Vertices)
	assert.False(t, r.Timestamp.IsZero())
}

func TestJSONLRoundTrip(t *testing.T) {
	ctx := context.Background()
	l, err := OpenJSONL(filepath.Join(t.TempDir(), "ledger", "counts.jsonl"))
	require.NoError(t, err)
	defer l.Close()

	empty, err := l.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	runA, runB := NewRunID(), NewRunID()
	require.NoError(t, l.Append(ctx,
		NewRecord(runA, sampleResult("grid(3x3)", 20, false)),
		NewRecord(runA, sampleResult("grid(3x3)", 0, true)),
	))
	require.NoError(t, l.Append(ctx, NewRecord(runB, sampleResult("squares(15)", 1, false))))

	all, err := l.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "squares(15)", all[2].Graph)

	byRun, err := l.List(ctx, Filter{RunID: runA})
	require.NoError(t, err)
	assert.Len(t, byRun, 2)

	cycles, err := l.List(ctx, Filter{Graph: "grid(3x3)", Mode: "cycles"})
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, "0", cycles[0].Count)

	limited, err := l.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJSONLSkipsGarbage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "counts.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0644))

	l, err := OpenJSONL(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(ctx, NewRecord(NewRunID(), sampleResult("k4", 12, false))))

	all, err := l.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "12", all[0].Count)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	l, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, Discard{}, l)
	assert.NoError(t, l.Append(ctx, Record{}))

	l, err = Open(ctx, Config{Backend: BackendJSONL, Path: filepath.Join(t.TempDir(), "r.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &JSONL{}, l)

	_, err = Open(ctx, Config{Backend: "sqlite"})
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidInput))

	_, err = Open(ctx, Config{Backend: BackendMongo})
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidInput))

	_, err = Open(ctx, Config{Backend: BackendJSONL, Path: "../escape.jsonl"})
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeInvalidPath))
}

func TestMongoFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, mongoFilter(Filter{Limit: 3}))
	assert.Equal(t, bson.M{"run_id": "r", "mode": "paths"}, mongoFilter(Filter{RunID: "r", Mode: "paths"}))
}

func TestOpenMongoUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := OpenMongo(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "", "")
	assert.Error(t, err)
}
