package maxsat

import (
	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Soft is a weighted optional clause.
type Soft struct {
	Clause []int
	Weight int
}

// Formula is a weighted partial MaxSAT instance over variables 1..NumVars.
type Formula struct {
	NumVars int
	Hard    [][]int
	Soft    []Soft
}

// AddHard appends a hard clause. The literals are copied.
func (f *Formula) AddHard(lits ...int) {
	f.Hard = append(f.Hard, append([]int(nil), lits...))
}

// AddSoft appends a soft clause with the given weight. The literals are
// copied.
func (f *Formula) AddSoft(weight int, lits ...int) {
	f.Soft = append(f.Soft, Soft{Clause: append([]int(nil), lits...), Weight: weight})
}

// TotalWeight returns the sum of all soft weights, the worst possible cost.
func (f *Formula) TotalWeight() int {
	total := 0
	for _, s := range f.Soft {
		total += s.Weight
	}
	return total
}

// Validate checks that every literal references an allocated variable,
// clauses are non-empty and weights are positive.
func (f *Formula) Validate() error {
	if f.NumVars < 0 {
		return hcerrors.New(hcerrors.ErrCodeEncoding, "negative variable count %d", f.NumVars)
	}
	check := func(kind string, i int, c []int) error {
		if len(c) == 0 {
			return hcerrors.New(hcerrors.ErrCodeEncoding, "%s clause %d is empty", kind, i)
		}
		for _, l := range c {
			if l == 0 || l > f.NumVars || -l > f.NumVars {
				return hcerrors.New(hcerrors.ErrCodeEncoding,
					"%s clause %d: literal %d outside 1..%d", kind, i, l, f.NumVars)
			}
		}
		return nil
	}
	for i, c := range f.Hard {
		if err := check("hard", i, c); err != nil {
			return err
		}
	}
	for i, s := range f.Soft {
		if err := check("soft", i, s.Clause); err != nil {
			return err
		}
		if s.Weight <= 0 {
			return hcerrors.New(hcerrors.ErrCodeEncoding, "soft clause %d: weight %d is not positive", i, s.Weight)
		}
	}
	return nil
}

// Satisfies reports whether a satisfies every hard clause.
func (f *Formula) Satisfies(a Assignment) bool {
	for _, c := range f.Hard {
		if !a.Satisfies(c) {
			return false
		}
	}
	return true
}

// Cost returns the total weight of soft clauses violated by a.
func (f *Formula) Cost(a Assignment) int {
	cost := 0
	for _, s := range f.Soft {
		if !a.Satisfies(s.Clause) {
			cost += s.Weight
		}
	}
	return cost
}

// Assignment maps each variable to a truth value. Index 0 is unused, so an
// assignment for n variables has length n+1.
type Assignment []bool

// Value returns the truth value of a DIMACS literal. Variables outside the
// assignment are false.
func (a Assignment) Value(lit int) bool {
	v := lit
	if v < 0 {
		v = -v
	}
	val := v < len(a) && a[v]
	if lit < 0 {
		return !val
	}
	return val
}

// Satisfies reports whether at least one literal of clause is true.
func (a Assignment) Satisfies(clause []int) bool {
	for _, l := range clause {
		if a.Value(l) {
			return true
		}
	}
	return false
}

// Stats summarizes the size of a formula.
type Stats struct {
	Variables int
	Hard      int
	Soft      int
	Literals  int
}

// Stats returns size information for logging.
func (f *Formula) Stats() Stats {
	s := Stats{Variables: f.NumVars, Hard: len(f.Hard), Soft: len(f.Soft)}
	for _, c := range f.Hard {
		s.Literals += len(c)
	}
	for _, c := range f.Soft {
		s.Literals += len(c.Clause)
	}
	return s
}
