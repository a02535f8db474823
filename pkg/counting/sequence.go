package counting

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hamcount/pkg/graph/families"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Sequence counts family members of size from..to (inclusive) with at most
// jobs counts running at once. Results are indexed by size - from. The
// first failure cancels the remaining counts.
//
// Rectangular families are built square.
func (c *Counter) Sequence(ctx context.Context, f families.Family, from, to int, p Params, jobs int) ([]*Result, error) {
	if from > to {
		return nil, hcerrors.New(hcerrors.ErrCodeInvalidInput, "empty range %d..%d", from, to)
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*Result, to-from+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for n := from; n <= to; n++ {
		g.Go(func() error {
			gr, err := f.Build(n, 0)
			if err != nil {
				return err
			}
			res, err := c.Count(ctx, gr, p)
			if err != nil {
				return fmt.Errorf("%s %d: %w", f.Name, n, err)
			}
			results[n-from] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
