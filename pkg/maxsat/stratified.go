package maxsat

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

const stratifiedName = "stratified"

// Stratified solves formulas with the incremental SAT solver of
// github.com/go-air/gini.
//
// Every soft clause gets a relaxation literal. Soft clauses are grouped by
// weight and the groups are bounded heaviest first: for each group the
// smallest number of relaxed clauses is found by increasing a sorting-network
// bound until the solver succeeds, and that bound is kept for the following
// groups. With more than one group the lexicographic optimum may not minimize
// the total weight, so a last pass tightens a bound over all relaxation
// literals, each repeated by its weight.
//
// ctx is checked between SAT calls.
type Stratified struct {
	Logger *log.Logger
}

type stratum struct {
	weight  int
	clauses []int
	sorter  *logic.CardSort
}

// Solve implements Oracle.
func (s *Stratified) Solve(ctx context.Context, f *Formula) (a Assignment, err error) {
	if err := prepare(ctx, stratifiedName, f); err != nil {
		return nil, err
	}
	logger := loggerOrDefault(s.Logger)

	defer func() {
		if r := recover(); r != nil {
			a, err = nil, recovered(stratifiedName, r)
		}
	}()

	start := time.Now()
	c := logic.NewCCap(f.NumVars + len(f.Soft) + 1)
	vars := make([]z.Lit, f.NumVars+1)
	for i := 1; i <= f.NumVars; i++ {
		vars[i] = c.Lit()
	}
	lit := func(d int) z.Lit {
		if d < 0 {
			return vars[-d].Not()
		}
		return vars[d]
	}
	relax := make([]z.Lit, len(f.Soft))
	for j := range f.Soft {
		relax[j] = c.Lit()
	}

	strata := groupByWeight(f.Soft)
	for _, st := range strata {
		ms := make([]z.Lit, len(st.clauses))
		for i, j := range st.clauses {
			ms[i] = relax[j]
		}
		st.sorter = c.CardSort(ms)
	}
	var total *logic.CardSort
	if len(strata) > 1 {
		ms := make([]z.Lit, 0, f.TotalWeight())
		for j, sc := range f.Soft {
			for range sc.Weight {
				ms = append(ms, relax[j])
			}
		}
		total = c.CardSort(ms)
	}

	g := gini.New()
	c.ToCnf(g)
	for _, cl := range f.Hard {
		for _, l := range cl {
			g.Add(lit(l))
		}
		g.Add(z.LitNull)
	}
	for j, sc := range f.Soft {
		for _, l := range sc.Clause {
			g.Add(lit(l))
		}
		g.Add(relax[j])
		g.Add(z.LitNull)
	}

	calls := 0
	solve := func(assumptions ...z.Lit) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, hcerrors.Wrap(hcerrors.ErrCodeOracle, err, "%s: cancelled after %d sat calls", stratifiedName, calls)
		}
		calls++
		g.Assume(assumptions...)
		switch g.Solve() {
		case satisfiable:
			return true, nil
		case unsatisfiable:
			return false, nil
		}
		return false, hcerrors.New(hcerrors.ErrCodeOracle, "%s: solver returned unknown", stratifiedName)
	}
	snapshot := func() Assignment {
		out := make(Assignment, f.NumVars+1)
		for i := 1; i <= f.NumVars; i++ {
			out[i] = g.Value(vars[i])
		}
		return out
	}

	ok, err := solve()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, infeasible(stratifiedName, f)
	}
	best := snapshot()

	var fixed []z.Lit
	for _, st := range strata {
		found := false
		for k := 0; k <= st.sorter.N(); k++ {
			bound := st.sorter.Leq(k)
			ok, err := solve(append(slices.Clone(fixed), bound)...)
			if err != nil {
				return nil, err
			}
			if ok {
				best = snapshot()
				fixed = append(fixed, bound)
				found = true
				logger.Debug("stratum bounded", "weight", st.weight, "clauses", len(st.clauses), "violated", k)
				break
			}
		}
		if !found {
			return nil, hcerrors.New(hcerrors.ErrCodeOracle,
				"%s: no bound for weight class %d although the hard part is satisfiable", stratifiedName, st.weight)
		}
	}

	cost := f.Cost(best)
	if total != nil {
		for cost > 0 {
			ok, err := solve(total.Leq(cost - 1))
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			best = snapshot()
			cost = f.Cost(best)
		}
	}

	if err := verify(stratifiedName, f, best); err != nil {
		return nil, err
	}
	stats := f.Stats()
	logger.Debug("maxsat solved",
		"backend", stratifiedName,
		"variables", stats.Variables,
		"literals", stats.Literals,
		"strata", len(strata),
		"sat_calls", calls,
		"cost", cost,
		"duration", time.Since(start))
	return best, nil
}

// groupByWeight partitions soft clause indices by weight, heaviest first.
func groupByWeight(soft []Soft) []*stratum {
	byWeight := make(map[int]*stratum)
	var out []*stratum
	for j, sc := range soft {
		st, ok := byWeight[sc.Weight]
		if !ok {
			st = &stratum{weight: sc.Weight}
			byWeight[sc.Weight] = st
			out = append(out, st)
		}
		st.clauses = append(st.clauses, j)
	}
	slices.SortStableFunc(out, func(a, b *stratum) int { return b.weight - a.weight })
	return out
}
