package separation

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/maxsat"
	"github.com/matzehuels/hamcount/pkg/observability"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Options configures Solve.
type Options struct {
	// Stratified selects the stratified gini oracle when Oracle is nil.
	Stratified bool

	// Encoding names the cardinality encoding; see ParseEncoding.
	Encoding string

	// Oracle overrides the backend chosen by Stratified.
	Oracle maxsat.Oracle

	// Logger receives debug output. Nil uses log.Default().
	Logger *log.Logger
}

func (o Options) backend() string {
	if o.Oracle != nil {
		return "custom"
	}
	if o.Stratified {
		return maxsat.BackendStratified
	}
	return maxsat.BackendGophersat
}

func (o Options) oracle() (maxsat.Oracle, error) {
	if o.Oracle != nil {
		return o.Oracle, nil
	}
	return maxsat.New(o.backend(), o.Logger)
}

// Solve computes an arrangement of g with minimum vertex separation.
//
// The call blocks until the oracle returns. Errors are ENCODING_ERROR,
// INFEASIBLE_MODEL or ORACLE_FAILURE; they are never retried.
func Solve(ctx context.Context, g *graph.Graph, opts Options) (arr *Arrangement, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if g.VertexCount() == 0 {
		return &Arrangement{Order: []string{}, Rank: map[string]int{}}, nil
	}

	start := time.Now()
	b := NewBuilder(g, ParseEncoding(opts.Encoding))
	f, err := b.Build()
	if err != nil {
		return nil, err
	}
	stats := b.Stats()
	backend := opts.backend()

	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, backend, stats.Vertices, stats.Variables, stats.Hard+stats.Soft)
	defer func() {
		width := -1
		if arr != nil {
			width = arr.Width
		}
		hooks.OnSolveComplete(ctx, backend, width, time.Since(start), err)
	}()

	logger.Debug("built separation model",
		"vertices", stats.Vertices,
		"variables", stats.Variables,
		"hard", stats.Hard,
		"soft", stats.Soft,
		"encoding", stats.Encoding)

	oracle, err := opts.oracle()
	if err != nil {
		return nil, err
	}
	a, err := oracle.Solve(ctx, f)
	if err != nil {
		if hcerrors.GetCode(err) == "" {
			err = hcerrors.Wrap(hcerrors.ErrCodeOracle, err, "%s oracle", backend)
		}
		return nil, err
	}

	arr, err = Decode(g.Vertices(), b.Pool(), a)
	if err != nil {
		return nil, err
	}
	arr.Stats = stats

	logger.Debug("solved separation model",
		"backend", backend,
		"width", arr.Width,
		"duration", time.Since(start))
	return arr, nil
}
