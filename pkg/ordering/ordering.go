// Package ordering chooses the vertex order in which the counting engine
// processes a graph.
//
// The enumeration cost grows exponentially with the separation width of the
// order, so the choice of [Orderer] decides whether an instance is feasible.
// [PathWidth] is exact and slow; the degree orderers are greedy and fast;
// [Identity] and [Sorted] are baselines.
//
// Orderers that also know the width of their order implement [Arranger].
package ordering

import (
	"context"
	"strings"

	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/separation"
)

// Orderer produces a total order of the vertices of a graph.
type Orderer interface {
	Order(ctx context.Context, g *graph.Graph) ([]string, error)
}

// Arranger is an Orderer that also reports the separation width of the
// order it produces.
type Arranger interface {
	Orderer
	Arrange(ctx context.Context, g *graph.Graph) (*separation.Arrangement, error)
}

// Strategy names an ordering strategy as accepted on the command line.
type Strategy string

const (
	StrategyDefault    Strategy = "default"    // insertion order
	StrategySorted     Strategy = "sorted"     // natural sort of vertex IDs
	StrategyIncreasing Strategy = "increasing" // increasing degree
	StrategyDecreasing Strategy = "decreasing" // decreasing degree
	StrategyPathWidth  Strategy = "pathwidth"  // exact vertex separation
	StrategyDFS        Strategy = "dfs"        // decreasing degree, depth-first traversal
	StrategyBFS        Strategy = "bfs"        // decreasing degree, breadth-first traversal
)

// Strategies lists every strategy in display order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyDefault, StrategySorted, StrategyIncreasing, StrategyDecreasing,
		StrategyPathWidth, StrategyDFS, StrategyBFS,
	}
}

// ParseStrategy resolves a strategy name. Unknown names resolve to
// StrategySorted with ok set to false so callers can warn.
func ParseStrategy(name string) (s Strategy, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "", "default", "identity", "insertion":
		return StrategyDefault, true
	case "sorted":
		return StrategySorted, true
	case "increasing", "increasingdegree", "inc":
		return StrategyIncreasing, true
	case "decreasing", "decreasingdegree", "dec":
		return StrategyDecreasing, true
	case "pathwidth", "separation", "exact":
		return StrategyPathWidth, true
	case "dfs":
		return StrategyDFS, true
	case "bfs":
		return StrategyBFS, true
	}
	return StrategySorted, false
}

// Orderer returns the orderer implementing s. opts configures the exact
// solver and is ignored by the other strategies.
func (s Strategy) Orderer(opts separation.Options) Orderer {
	switch s {
	case StrategyDefault:
		return Identity{}
	case StrategyIncreasing:
		return Increasing()
	case StrategyDecreasing, StrategyDFS, StrategyBFS:
		return Decreasing()
	case StrategyPathWidth:
		return PathWidth{Options: opts}
	}
	return Sorted{}
}

// Traversal returns the traversal hint that accompanies s.
func (s Strategy) Traversal() enumerate.Traversal {
	switch s {
	case StrategyDFS:
		return enumerate.TraversalDFS
	case StrategyBFS:
		return enumerate.TraversalBFS
	}
	return enumerate.TraversalAsIs
}

// Exact reports whether s computes an optimal order.
func (s Strategy) Exact() bool { return s == StrategyPathWidth }

// =============================================================================
// Baselines
// =============================================================================

// Identity keeps the insertion order of the graph.
type Identity struct{}

// Order implements Orderer.
func (Identity) Order(ctx context.Context, g *graph.Graph) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.Vertices(), nil
}

// Sorted orders vertices by natural sort of their IDs, comparing digit runs
// numerically so that "2,10" follows "2,9".
type Sorted struct{}

// Order implements Orderer.
func (Sorted) Order(ctx context.Context, g *graph.Graph) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vs := g.Vertices()
	sortNatural(vs)
	return vs, nil
}

// =============================================================================
// Exact
// =============================================================================

// PathWidth computes an order of minimum vertex separation with
// separation.Solve.
type PathWidth struct {
	Options separation.Options
}

// Order implements Orderer.
func (p PathWidth) Order(ctx context.Context, g *graph.Graph) ([]string, error) {
	arr, err := p.Arrange(ctx, g)
	if err != nil {
		return nil, err
	}
	return arr.Order, nil
}

// Arrange implements Arranger.
func (p PathWidth) Arrange(ctx context.Context, g *graph.Graph) (*separation.Arrangement, error) {
	return separation.Solve(ctx, g, p.Options)
}
