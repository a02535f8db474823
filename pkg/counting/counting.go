// Package counting orchestrates one Hamiltonian count: order the vertices,
// relabel them 1..n in that order, extract the ordered edge list and hand it
// to an [enumerate.Engine].
//
// [Counter] memoises orders and counts in a [cache.Cache] keyed by the graph
// hash and every parameter that influences the result. [Counter.Sequence]
// runs a graph family over a size range with bounded concurrency.
//
//	c := counting.NewCounter(nil, cache.NewNullCache(), nil, logger)
//	res, err := c.Count(ctx, families.Grid(3, 3), counting.Params{
//	    Strategy: ordering.StrategyPathWidth,
//	})
//	fmt.Println(res.Count) // 20
package counting

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/ordering"
)

// Params selects what to count and how.
type Params struct {
	// Strategy chooses the vertex orderer. Empty means StrategyDefault.
	Strategy ordering.Strategy `json:"strategy"`

	// Traversal overrides the strategy's traversal hint when set.
	Traversal enumerate.Traversal `json:"traversal,omitempty"`

	// Cycle counts Hamiltonian cycles instead of paths.
	Cycle bool `json:"cycle,omitempty"`

	// Source and Sink fix path endpoints by vertex ID. Empty means unset.
	Source string `json:"source,omitempty"`
	Sink   string `json:"sink,omitempty"`

	// Refresh bypasses cached orders and counts and overwrites them.
	Refresh bool `json:"-"`
}

func (p Params) strategy() ordering.Strategy {
	if p.Strategy == "" {
		return ordering.StrategyDefault
	}
	return p.Strategy
}

func (p Params) traversal() enumerate.Traversal {
	if p.Traversal != "" {
		return p.Traversal
	}
	return p.strategy().Traversal()
}

// Mode returns "cycles" or "paths".
func (p Params) Mode() string {
	if p.Cycle {
		return "cycles"
	}
	return "paths"
}

// Result is the outcome of one count.
type Result struct {
	Graph     string `json:"graph"`
	GraphHash string `json:"graph_hash"`
	Params    Params `json:"params"`

	// Count is the number of Hamiltonian paths or cycles, as edge sets.
	Count *big.Int `json:"count"`

	// Order is the vertex order used; vertex Order[i] was relabelled i+1.
	Order []string `json:"order"`

	// Width is the vertex separation of Order. Exact reports whether the
	// strategy guarantees it is minimal.
	Width int  `json:"width"`
	Exact bool `json:"exact"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats holds sizes and timings of a count.
type Stats struct {
	Vertices     int           `json:"vertices"`
	Edges        int           `json:"edges"`
	OrderTime    time.Duration `json:"order_time"`
	CountTime    time.Duration `json:"count_time"`
	PeakFrontier int           `json:"peak_frontier,omitempty"`
	PeakStates   int           `json:"peak_states,omitempty"`
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	OrderHit bool `json:"order_hit"`
	CountHit bool `json:"count_hit"`
}

// MarshalJSON encodes the count as a decimal string so that values beyond
// 2^53 survive JSON consumers.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	count := "0"
	if r.Count != nil {
		count = r.Count.String()
	}
	return json.Marshal(struct {
		plain
		Count string `json:"count"`
	}{plain(r), count})
}
