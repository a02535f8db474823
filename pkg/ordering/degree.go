package ordering

import (
	"context"
	"iter"

	"github.com/matzehuels/hamcount/pkg/graph"
)

// DegreeQueue yields the vertices of a graph by repeatedly removing the
// vertex of maximum (or minimum) degree in what remains of the graph.
// Ties go to the vertex inserted first.
//
// A DegreeQueue works on its own copy of the adjacency structure; the graph
// is never modified. It cannot be restarted once drained.
type DegreeQueue struct {
	decreasing bool
	ids        []string
	adj        [][]int
	degree     []int
	removed    []bool
	remaining  int
}

// NewDegreeQueue builds a queue over g. With decreasing set the highest
// degree comes first.
func NewDegreeQueue(g *graph.Graph, decreasing bool) *DegreeQueue {
	ids := g.Vertices()
	q := &DegreeQueue{
		decreasing: decreasing,
		ids:        ids,
		adj:        make([][]int, len(ids)),
		degree:     make([]int, len(ids)),
		removed:    make([]bool, len(ids)),
		remaining:  len(ids),
	}
	for i, v := range ids {
		for _, w := range g.Neighbors(v) {
			j, _ := g.Index(w)
			q.adj[i] = append(q.adj[i], j)
		}
		q.degree[i] = len(q.adj[i])
	}
	return q
}

// Len returns the number of vertices not yet yielded.
func (q *DegreeQueue) Len() int { return q.remaining }

// Next removes and returns the next vertex. ok is false once the queue is
// empty.
func (q *DegreeQueue) Next() (v string, ok bool) {
	best := -1
	for i := range q.ids {
		if q.removed[i] {
			continue
		}
		if best < 0 ||
			(q.decreasing && q.degree[i] > q.degree[best]) ||
			(!q.decreasing && q.degree[i] < q.degree[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	q.removed[best] = true
	q.remaining--
	for _, j := range q.adj[best] {
		if !q.removed[j] {
			q.degree[j]--
		}
	}
	return q.ids[best], true
}

// All drains the queue lazily.
func (q *DegreeQueue) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			v, ok := q.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Degree orders vertices with a DegreeQueue.
type Degree struct {
	Decreasing bool
}

// Decreasing returns the maximum-degree-first orderer.
func Decreasing() Degree { return Degree{Decreasing: true} }

// Increasing returns the minimum-degree-first orderer.
func Increasing() Degree { return Degree{} }

// Order implements Orderer. ctx is checked every 1024 vertices.
func (d Degree) Order(ctx context.Context, g *graph.Graph) ([]string, error) {
	q := NewDegreeQueue(g, d.Decreasing)
	out := make([]string, 0, q.Len())
	for v := range q.All() {
		if len(out)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out = append(out, v)
	}
	return out, nil
}
