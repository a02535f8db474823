package counting

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hamcount/pkg/cache"
	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/observability"
	"github.com/matzehuels/hamcount/pkg/ordering"
	"github.com/matzehuels/hamcount/pkg/separation"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Counter runs counts with caching.
//
// A Counter holds no per-count state; one instance may serve concurrent
// Count calls as long as its Cache does.
type Counter struct {
	Engine        enumerate.Engine
	Cache         cache.Cache
	Keyer         cache.Keyer
	Logger        *log.Logger
	SolverOptions separation.Options

	// OrderTTL bounds the lifetime of cached orders. Zero uses
	// cache.TTLOrder.
	OrderTTL time.Duration
}

// NewCounter creates a counter.
// A nil engine uses the frontier engine, a nil cache disables caching and a
// nil keyer uses cache.DefaultKeyer.
func NewCounter(engine enumerate.Engine, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Counter {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = enumerate.NewFrontier(logger)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Counter{
		Engine: engine,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

type statsEngine interface {
	CountStats(ctx context.Context, u enumerate.Universe, q enumerate.Query) (*big.Int, enumerate.Stats, error)
}

// Count orders g, relabels it and counts its Hamiltonian paths or cycles.
func (c *Counter) Count(ctx context.Context, g *graph.Graph, p Params) (*Result, error) {
	if g == nil {
		return nil, hcerrors.New(hcerrors.ErrCodeInvalidInput, "nil graph")
	}
	p.Strategy = p.strategy()
	p.Traversal = p.traversal()

	result := &Result{
		Graph:  g.Name(),
		Params: p,
		Exact:  p.Strategy.Exact(),
		Stats: Stats{
			Vertices: g.VertexCount(),
			Edges:    g.EdgeCount(),
		},
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(data)

	orderStart := time.Now()
	order, orderHit, err := c.OrderWithCacheInfo(ctx, g, result.GraphHash, p)
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	result.Order = order
	result.Stats.OrderTime = time.Since(orderStart)
	result.CacheInfo.OrderHit = orderHit
	if result.Width, err = separation.Width(g, order); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}

	c.Logger.Info("ordered vertices",
		"graph", g.Name(),
		"strategy", p.Strategy,
		"width", result.Width,
		"cached", orderHit,
		"duration", result.Stats.OrderTime)

	countStart := time.Now()
	count, stats, countHit, err := c.countWithCacheInfo(ctx, g, result.GraphHash, order, p)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	result.Count = count
	result.Stats.CountTime = time.Since(countStart)
	result.Stats.PeakFrontier = stats.PeakFrontier
	result.Stats.PeakStates = stats.PeakStates
	result.CacheInfo.CountHit = countHit

	c.Logger.Info("counted",
		"graph", g.Name(),
		"mode", p.Mode(),
		"count", count,
		"cached", countHit,
		"duration", result.Stats.CountTime)

	return result, nil
}

func (c *Counter) orderKeyOpts(p Params) cache.OrderKeyOpts {
	opts := cache.OrderKeyOpts{Strategy: string(p.strategy())}
	if p.strategy().Exact() {
		opts.Stratified = c.SolverOptions.Stratified
		opts.Encoding = string(separation.ParseEncoding(c.SolverOptions.Encoding))
	}
	return opts
}

// OrderWithCacheInfo computes the vertex order of g for p.Strategy, reusing
// a cached order when one exists. graphHash may be empty, in which case it
// is computed.
func (c *Counter) OrderWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, p Params) ([]string, bool, error) {
	if graphHash == "" {
		data, err := graph.MarshalGraph(g)
		if err != nil {
			return nil, false, err
		}
		graphHash = cache.Hash(data)
	}
	key := c.Keyer.OrderKey(graphHash, c.orderKeyOpts(p))
	hooks := observability.Cache()

	if !p.Refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			var order []string
			if err := json.Unmarshal(data, &order); err == nil {
				if _, err := g.Ranks(order); err == nil {
					hooks.OnCacheHit(ctx, "order")
					return order, true, nil
				}
			}
		} else if err != nil {
			c.Logger.Warn("cache read failed", "key", key, "error", err)
		}
		hooks.OnCacheMiss(ctx, "order")
	}

	order, err := c.order(ctx, g, p.strategy())
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(order); err == nil {
		ttl := c.OrderTTL
		if ttl == 0 {
			ttl = cache.TTLOrder
		}
		if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
			c.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			hooks.OnCacheSet(ctx, "order", len(data))
		}
	}
	return order, false, nil
}

func (c *Counter) order(ctx context.Context, g *graph.Graph, s ordering.Strategy) (order []string, err error) {
	opts := c.SolverOptions
	if opts.Logger == nil {
		opts.Logger = c.Logger
	}
	hooks := observability.Count()
	start := time.Now()
	width := -1
	hooks.OnOrderStart(ctx, string(s), g.VertexCount())
	defer func() {
		hooks.OnOrderComplete(ctx, string(s), width, time.Since(start), err)
	}()

	o := s.Orderer(opts)
	if a, ok := o.(ordering.Arranger); ok {
		arr, err := a.Arrange(ctx, g)
		if err != nil {
			return nil, err
		}
		width = arr.Width
		return arr.Order, nil
	}
	order, err = o.Order(ctx, g)
	if err != nil {
		return nil, err
	}
	width, err = separation.Width(g, order)
	return order, err
}

// Universe relabels g by order and builds the engine input: vertices 1..n,
// edges grouped by their earlier endpoint.
func Universe(g *graph.Graph, order []string, t enumerate.Traversal) (enumerate.Universe, map[string]int, error) {
	ranked, ranks, err := g.RankedEdges(order)
	if err != nil {
		return enumerate.Universe{}, nil, hcerrors.Wrap(hcerrors.ErrCodeInvalidOrder, err, "order of %s", g.Name())
	}
	u, err := enumerate.NewUniverse(len(order), ranked, t)
	if err != nil {
		return enumerate.Universe{}, nil, err
	}
	return u, ranks, nil
}

func endpoint(ranks map[string]int, role, id string) (int, error) {
	if id == "" {
		return 0, nil
	}
	r, ok := ranks[id]
	if !ok {
		return 0, hcerrors.New(hcerrors.ErrCodeInvalidInput, "%s %q is not a vertex", role, id)
	}
	return r, nil
}

func (c *Counter) countWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, order []string, p Params) (*big.Int, enumerate.Stats, bool, error) {
	key := c.Keyer.CountKey(graphHash, cache.CountKeyOpts{
		Order:     c.orderKeyOpts(p),
		Traversal: string(p.traversal()),
		Cycle:     p.Cycle,
		Source:    p.Source,
		Sink:      p.Sink,
	})
	hooks := observability.Cache()

	if !p.Refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			if n, ok := new(big.Int).SetString(string(data), 10); ok {
				hooks.OnCacheHit(ctx, "count")
				return n, enumerate.Stats{}, true, nil
			}
		} else if err != nil {
			c.Logger.Warn("cache read failed", "key", key, "error", err)
		}
		hooks.OnCacheMiss(ctx, "count")
	}

	n, stats, err := c.count(ctx, g, order, p)
	if err != nil {
		return nil, stats, false, err
	}

	data := []byte(n.String())
	if err := c.Cache.Set(ctx, key, data, 0); err != nil {
		c.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		hooks.OnCacheSet(ctx, "count", len(data))
	}
	return n, stats, false, nil
}

func (c *Counter) count(ctx context.Context, g *graph.Graph, order []string, p Params) (n *big.Int, stats enumerate.Stats, err error) {
	u, ranks, err := Universe(g, order, p.traversal())
	if err != nil {
		return nil, stats, err
	}
	q := enumerate.Query{Cycle: p.Cycle}
	if q.Source, err = endpoint(ranks, "source", p.Source); err != nil {
		return nil, stats, err
	}
	if q.Sink, err = endpoint(ranks, "sink", p.Sink); err != nil {
		return nil, stats, err
	}
	if err := q.Validate(u.Vertices); err != nil {
		return nil, stats, err
	}

	hooks := observability.Count()
	start := time.Now()
	hooks.OnCountStart(ctx, q.Mode(), u.Vertices, len(u.Edges))
	defer func() {
		hooks.OnCountComplete(ctx, q.Mode(), time.Since(start), err)
	}()

	if se, ok := c.Engine.(statsEngine); ok {
		return se.CountStats(ctx, u, q)
	}
	n, err = c.Engine.Count(ctx, u, q)
	return n, stats, err
}

// FormatCount renders n with thousands separators.
func FormatCount(n *big.Int) string {
	s := n.String()
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
