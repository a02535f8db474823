package separation

import (
	"strings"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Encoding selects the CNF encoding of cardinality constraints.
type Encoding string

const (
	// EncodingTotalizer is the totalizer of Bailleux and Boufkhad with
	// outputs clamped at the bound plus one.
	EncodingTotalizer Encoding = "totalizer"

	// EncodingSeqCounter is the sequential counter of Sinz.
	EncodingSeqCounter Encoding = "seqcounter"
)

// ParseEncoding resolves an encoding name. Unknown and empty names select
// the totalizer.
func ParseEncoding(name string) Encoding {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seqcounter", "seq", "sequential", "sinz":
		return EncodingSeqCounter
	}
	return EncodingTotalizer
}

// sink receives clauses and allocates auxiliary variables.
type sink interface {
	hard(lits ...int)
	fresh() int
}

// cardinality emits at-most, at-least and exactly constraints over DIMACS
// literals. The literals must reference distinct variables.
type cardinality interface {
	atMost(s sink, lits []int, k int) error
	atLeast(s sink, lits []int, k int) error
	exactly(s sink, lits []int, k int) error
}

func newCardinality(e Encoding) cardinality {
	if e == EncodingSeqCounter {
		return seqCounter{}
	}
	return totalizer{}
}

func boundError(op string, n, k int) error {
	return hcerrors.New(hcerrors.ErrCodeEncoding, "%s %d of %d literals is unsatisfiable", op, k, n)
}

// =============================================================================
// Totalizer
// =============================================================================

type totalizer struct{}

func (totalizer) atMost(s sink, lits []int, k int) error {
	switch {
	case k < 0:
		return boundError("at most", len(lits), k)
	case k >= len(lits):
		return nil
	case k == 0:
		for _, l := range lits {
			s.hard(-l)
		}
		return nil
	}
	out := totalize(s, lits, k+1)
	s.hard(-out[k])
	return nil
}

func (totalizer) atLeast(s sink, lits []int, k int) error {
	switch {
	case k > len(lits):
		return boundError("at least", len(lits), k)
	case k <= 0:
		return nil
	}
	out := totalize(s, lits, k)
	s.hard(out[k-1])
	return nil
}

func (totalizer) exactly(s sink, lits []int, k int) error {
	if k < 0 || k > len(lits) {
		return boundError("exactly", len(lits), k)
	}
	if k == 0 {
		for _, l := range lits {
			s.hard(-l)
		}
		return nil
	}
	out := totalize(s, lits, k+1)
	s.hard(out[k-1])
	if k < len(out) {
		s.hard(-out[k])
	}
	return nil
}

// totalize returns unary count literals o where o[i] holds iff at least i+1
// of lits are true, for i < min(len(lits), limit). Counts beyond limit
// saturate the last output.
func totalize(s sink, lits []int, limit int) []int {
	if len(lits) == 1 {
		return []int{lits[0]}
	}
	mid := len(lits) / 2
	a := totalize(s, lits[:mid], limit)
	b := totalize(s, lits[mid:], limit)
	m := min(len(a)+len(b), limit)

	r := make([]int, m)
	for i := range r {
		r[i] = s.fresh()
	}

	// Upward: i true on the left and j on the right give at least i+j.
	for i := 0; i <= len(a); i++ {
		for j := 0; j <= len(b); j++ {
			if i+j == 0 {
				continue
			}
			clause := make([]int, 0, 3)
			if i > 0 {
				clause = append(clause, -a[i-1])
			}
			if j > 0 {
				clause = append(clause, -b[j-1])
			}
			clause = append(clause, r[min(i+j, m)-1])
			s.hard(clause...)
		}
	}

	// Downward: at least i+j+1 needs more than i on the left or more than j
	// on the right.
	for i := 0; i <= len(a); i++ {
		for j := 0; j <= len(b); j++ {
			if i+j+1 > m {
				continue
			}
			clause := make([]int, 0, 3)
			if i < len(a) {
				clause = append(clause, a[i])
			}
			if j < len(b) {
				clause = append(clause, b[j])
			}
			clause = append(clause, -r[i+j])
			s.hard(clause...)
		}
	}
	return r
}

// =============================================================================
// Sequential counter
// =============================================================================

type seqCounter struct{}

func (seqCounter) atMost(s sink, lits []int, k int) error {
	n := len(lits)
	switch {
	case k < 0:
		return boundError("at most", n, k)
	case k >= n:
		return nil
	case k == 0:
		for _, l := range lits {
			s.hard(-l)
		}
		return nil
	}

	// reg[i][j] holds iff at least j+1 of lits[0..i] are true.
	reg := make([][]int, n-1)
	for i := range reg {
		reg[i] = make([]int, k)
		for j := range reg[i] {
			reg[i][j] = s.fresh()
		}
	}

	s.hard(-lits[0], reg[0][0])
	for j := 1; j < k; j++ {
		s.hard(-reg[0][j])
	}
	for i := 1; i < n-1; i++ {
		s.hard(-lits[i], reg[i][0])
		s.hard(-reg[i-1][0], reg[i][0])
		for j := 1; j < k; j++ {
			s.hard(-lits[i], -reg[i-1][j-1], reg[i][j])
			s.hard(-reg[i-1][j], reg[i][j])
		}
		s.hard(-lits[i], -reg[i-1][k-1])
	}
	s.hard(-lits[n-1], -reg[n-2][k-1])
	return nil
}

func (c seqCounter) atLeast(s sink, lits []int, k int) error {
	n := len(lits)
	if k > n {
		return boundError("at least", n, k)
	}
	if k <= 0 {
		return nil
	}
	neg := make([]int, n)
	for i, l := range lits {
		neg[i] = -l
	}
	return c.atMost(s, neg, n-k)
}

func (c seqCounter) exactly(s sink, lits []int, k int) error {
	if k < 0 || k > len(lits) {
		return boundError("exactly", len(lits), k)
	}
	if err := c.atMost(s, lits, k); err != nil {
		return err
	}
	return c.atLeast(s, lits, k)
}
