package enumerate

import (
	"context"
	"encoding/binary"
	"math/big"
	"time"

	"github.com/charmbracelet/log"
)

// Stats describes one frontier run.
type Stats struct {
	Edges        int           // edges processed, apex edges included
	PeakFrontier int           // widest frontier seen
	PeakStates   int           // most live states after any edge
	Duration     time.Duration // wall time of the run
}

// Frontier counts Hamiltonian paths and cycles with a mate-array dynamic
// program over the edge order.
type Frontier struct {
	// Logger receives per-run debug output. Nil uses log.Default().
	Logger *log.Logger
}

// NewFrontier returns a Frontier engine.
func NewFrontier(logger *log.Logger) *Frontier {
	return &Frontier{Logger: logger}
}

// Count implements Engine.
func (f *Frontier) Count(ctx context.Context, u Universe, q Query) (*big.Int, error) {
	n, _, err := f.CountStats(ctx, u, q)
	return n, err
}

// CountStats is Count that also reports run statistics.
func (f *Frontier) CountStats(ctx context.Context, u Universe, q Query) (*big.Int, Stats, error) {
	if err := q.Validate(u.Vertices); err != nil {
		return nil, Stats{}, err
	}
	n := u.Vertices
	switch {
	case n == 0:
		return new(big.Int), Stats{}, nil
	case n == 1:
		if q.Cycle {
			return new(big.Int), Stats{}, nil
		}
		return big.NewInt(1), Stats{}, nil
	case q.Cycle && n < 3:
		return new(big.Int), Stats{}, nil
	}

	edges := u.Ordered()
	degree := make([]int, n+1)
	for _, e := range edges {
		degree[e[0]]++
		degree[e[1]]++
	}
	for v := 1; v <= n; v++ {
		if degree[v] == 0 {
			return new(big.Int), Stats{}, nil
		}
	}

	work := []step{}
	vertices := n
	if q.Cycle {
		for _, e := range edges {
			work = append(work, step{u: e[0], v: e[1]})
		}
	} else {
		work = withApex(edges, n, q)
		vertices = n + 1
	}

	logger := f.Logger
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()
	count, stats, err := run(ctx, work, vertices)
	stats.Duration = time.Since(start)
	if err != nil {
		return nil, stats, err
	}
	logger.Debug("frontier count",
		"mode", q.Mode(),
		"vertices", n,
		"edges", stats.Edges,
		"peak_frontier", stats.PeakFrontier,
		"peak_states", stats.PeakStates,
		"duration", stats.Duration)
	return count, stats, nil
}

// step is one edge of the working order. Mandatory edges have no skip
// branch.
type step struct {
	u, v      int
	mandatory bool
}

// withApex adds the apex vertex n+1 so that Hamiltonian paths of the graph
// become Hamiltonian cycles through the apex. The apex edge of a vertex is
// placed just before that vertex's last edge.
func withApex(edges [][2]int, n int, q Query) []step {
	x := n + 1
	joined := make([]bool, n+1)
	mandatory := make([]bool, n+1)
	switch {
	case q.Source != 0 && q.Sink != 0:
		joined[q.Source], joined[q.Sink] = true, true
		mandatory[q.Source], mandatory[q.Sink] = true, true
	case q.Source != 0 || q.Sink != 0:
		end := max(q.Source, q.Sink)
		for v := 1; v <= n; v++ {
			joined[v] = true
		}
		mandatory[end] = true
	default:
		for v := 1; v <= n; v++ {
			joined[v] = true
		}
	}

	last := make([]int, n+1)
	for i, e := range edges {
		last[e[0]] = i
		last[e[1]] = i
	}
	out := make([]step, 0, len(edges)+n)
	for i, e := range edges {
		for _, v := range e {
			if last[v] == i && joined[v] {
				out = append(out, step{u: v, v: x, mandatory: mandatory[v]})
			}
		}
		out = append(out, step{u: e[0], v: e[1]})
	}
	return out
}

type state struct {
	mate  []int32
	count *big.Int
}

type layer map[string]*state

func (l layer) add(mate []int32, count *big.Int) {
	k := key(mate)
	if s, ok := l[k]; ok {
		s.count.Add(s.count, count)
		return
	}
	l[k] = &state{mate: mate, count: new(big.Int).Set(count)}
}

func key(mate []int32) string {
	buf := make([]byte, 0, 4*len(mate))
	for _, m := range mate {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(m))
	}
	return string(buf)
}

// run counts Hamiltonian cycles over vertices 1..vertices. A mate entry is
// the vertex itself at degree 0, 0 at degree 2 and otherwise the far end of
// the vertex's path fragment.
func run(ctx context.Context, work []step, vertices int) (*big.Int, Stats, error) {
	first := make([]int, vertices+1)
	last := make([]int, vertices+1)
	for v := range first {
		first[v] = -1
	}
	lastEntry, lastMandatory := 0, -1
	for i, s := range work {
		for _, v := range []int{s.u, s.v} {
			if first[v] < 0 {
				first[v] = i
				lastEntry = i
			}
			last[v] = i
		}
		if s.mandatory {
			lastMandatory = i
		}
	}

	stats := Stats{Edges: len(work)}
	total := new(big.Int)
	pos := make([]int, vertices+1)
	var front []int
	states := layer{"": {mate: nil, count: big.NewInt(1)}}

	for i, s := range work {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		for _, v := range []int{s.u, s.v} {
			if first[v] != i {
				continue
			}
			pos[v] = len(front)
			front = append(front, v)
			grown := make(layer, len(states))
			for _, st := range states {
				grown.add(append(st.mate, int32(v)), st.count)
			}
			states = grown
		}
		stats.PeakFrontier = max(stats.PeakFrontier, len(front))

		iu, iv := pos[s.u], pos[s.v]
		closable := i >= lastEntry && i >= lastMandatory
		next := make(layer, len(states))
		for _, st := range states {
			if !s.mandatory {
				next.add(st.mate, st.count)
			}
			a, b := st.mate[iu], st.mate[iv]
			if a == 0 || b == 0 {
				continue
			}
			if a == int32(s.v) {
				if closable && saturated(st.mate, iu, iv) {
					total.Add(total, st.count)
				}
				continue
			}
			m := append([]int32(nil), st.mate...)
			m[pos[a]] = b
			m[pos[b]] = a
			if a != int32(s.u) {
				m[iu] = 0
			}
			if b != int32(s.v) {
				m[iv] = 0
			}
			next.add(m, st.count)
		}
		states = next

		for _, v := range []int{s.u, s.v} {
			if last[v] != i {
				continue
			}
			states = states.drop(pos[v])
			front = remove(front, pos[v])
			for j, w := range front {
				pos[w] = j
			}
		}
		stats.PeakStates = max(stats.PeakStates, len(states))
	}
	return total, stats, nil
}

// drop removes frontier position p, discarding states in which the vertex
// there is not yet of degree 2.
func (l layer) drop(p int) layer {
	out := make(layer, len(l))
	for _, st := range l {
		if st.mate[p] != 0 {
			continue
		}
		m := append(append([]int32(nil), st.mate[:p]...), st.mate[p+1:]...)
		out[key(m)] = &state{mate: m, count: st.count}
	}
	return out
}

func saturated(mate []int32, skip ...int) bool {
	for j, m := range mate {
		if m != 0 && j != skip[0] && j != skip[1] {
			return false
		}
	}
	return true
}

func remove(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
