package maxsat

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	gsmaxsat "github.com/crillab/gophersat/maxsat"
)

// Gophersat solves formulas with the MaxSAT solver of
// github.com/crillab/gophersat, which improves a model until no cheaper one
// exists.
//
// The search cannot be interrupted; ctx is only checked before it starts.
type Gophersat struct {
	Logger *log.Logger
}

const gophersatName = "gophersat"

// Solve implements Oracle.
func (s *Gophersat) Solve(ctx context.Context, f *Formula) (a Assignment, err error) {
	if err := prepare(ctx, gophersatName, f); err != nil {
		return nil, err
	}
	logger := loggerOrDefault(s.Logger)

	if len(f.Hard) == 0 && len(f.Soft) == 0 {
		return make(Assignment, f.NumVars+1), nil
	}

	constrs := make([]gsmaxsat.Constr, 0, len(f.Hard)+len(f.Soft))
	for _, c := range f.Hard {
		constrs = append(constrs, gsmaxsat.HardClause(gophersatLits(c)...))
	}
	for _, sc := range f.Soft {
		constrs = append(constrs, gsmaxsat.WeightedClause(gophersatLits(sc.Clause), sc.Weight))
	}

	defer func() {
		if r := recover(); r != nil {
			a, err = nil, recovered(gophersatName, r)
		}
	}()

	start := time.Now()
	model, cost := gsmaxsat.New(constrs...).Solve()
	if model == nil {
		return nil, infeasible(gophersatName, f)
	}

	a = make(Assignment, f.NumVars+1)
	for i := 1; i <= f.NumVars; i++ {
		a[i] = model[varName(i)]
	}
	if err := verify(gophersatName, f, a); err != nil {
		return nil, err
	}
	stats := f.Stats()
	logger.Debug("maxsat solved",
		"backend", gophersatName,
		"variables", stats.Variables,
		"literals", stats.Literals,
		"cost", cost,
		"max_cost", f.TotalWeight(),
		"duration", time.Since(start))
	return a, nil
}

func gophersatLits(clause []int) []gsmaxsat.Lit {
	lits := make([]gsmaxsat.Lit, len(clause))
	for i, l := range clause {
		if l > 0 {
			lits[i] = gsmaxsat.Var(varName(l))
		} else {
			lits[i] = gsmaxsat.Var(varName(-l)).Negation()
		}
	}
	return lits
}

func varName(v int) string { return "x" + strconv.Itoa(v) }
