package separation

import (
	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/maxsat"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Builder translates one graph into the weighted formula described in the
// package documentation. A Builder is single-use: it owns its Pool and
// Formula for the lifetime of one solve.
type Builder struct {
	g        *graph.Graph
	vertices []string
	pool     *Pool
	formula  *maxsat.Formula
	card     cardinality
	encoding Encoding
	built    bool
}

// Stats summarizes a built model.
type Stats struct {
	Vertices  int
	Variables int
	Hard      int
	Soft      int
	Encoding  Encoding
}

// NewBuilder prepares a builder for g using the given cardinality encoding.
func NewBuilder(g *graph.Graph, enc Encoding) *Builder {
	if enc == "" {
		enc = EncodingTotalizer
	}
	return &Builder{
		g:        g,
		vertices: g.Vertices(),
		pool:     NewPool(),
		formula:  &maxsat.Formula{},
		card:     newCardinality(enc),
		encoding: enc,
	}
}

// Pool returns the variable pool shared with the decoder.
func (b *Builder) Pool() *Pool { return b.pool }

// Stats reports the size of the model. It is only meaningful after Build.
func (b *Builder) Stats() Stats {
	return Stats{
		Vertices:  len(b.vertices),
		Variables: b.formula.NumVars,
		Hard:      len(b.formula.Hard),
		Soft:      len(b.formula.Soft),
		Encoding:  b.encoding,
	}
}

func (b *Builder) hard(lits ...int) { b.formula.AddHard(lits...) }
func (b *Builder) fresh() int       { return b.pool.Fresh() }

func (b *Builder) y(v string, t int) int { return b.pool.ID(Y(v, t)) }
func (b *Builder) u(v string, t int) int { return b.pool.ID(U(v, t)) }
func (b *Builder) z(t int) int           { return b.pool.ID(Z(t)) }

// Build emits the formula. Calling Build twice is an encoding error.
func (b *Builder) Build() (*maxsat.Formula, error) {
	if b.built {
		return nil, hcerrors.New(hcerrors.ErrCodeEncoding, "builder already used")
	}
	b.built = true
	n := len(b.vertices)

	// Variables are allocated step by step so that IDs of one step are
	// contiguous, which keeps the formula readable when dumped.
	for t := 1; t <= n; t++ {
		for _, v := range b.vertices {
			b.y(v, t)
			b.u(v, t)
		}
		b.z(t)
	}

	for t := 1; t < n; t++ {
		for _, v := range b.vertices {
			b.hard(-b.y(v, t), b.y(v, t+1))
		}
		b.hard(b.z(t), -b.z(t+1))
	}

	noZ := make([]int, n)
	for t := 1; t <= n; t++ {
		noZ[t-1] = -b.z(t)
	}

	for t := 1; t <= n; t++ {
		for _, v := range b.vertices {
			for _, w := range b.g.Neighbors(v) {
				b.hard(-b.y(v, t), b.u(v, t), b.y(w, t))
			}
		}

		b.formula.AddSoft(1, -b.z(t))

		ys := make([]int, n)
		us := make([]int, 0, 2*n)
		for i, v := range b.vertices {
			ys[i] = b.y(v, t)
			us = append(us, b.u(v, t))
		}
		if err := b.card.exactly(b, ys, t); err != nil {
			return nil, err
		}
		us = append(us, noZ...)
		if err := b.card.atMost(b, us, n); err != nil {
			return nil, err
		}
	}

	b.formula.NumVars = b.pool.Len()
	if err := b.formula.Validate(); err != nil {
		return nil, err
	}
	return b.formula, nil
}
