package maxsat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Oracle solves weighted partial MaxSAT instances.
//
// Solve returns an assignment of length f.NumVars+1 that satisfies every hard
// clause of f and minimizes the violated soft weight. Ties between optimal
// assignments may be broken arbitrarily. An unsatisfiable hard part yields
// an INFEASIBLE_MODEL error; any other failure is an ORACLE_FAILURE.
type Oracle interface {
	Solve(ctx context.Context, f *Formula) (Assignment, error)
}

// Func adapts an ordinary function to the Oracle interface.
type Func func(ctx context.Context, f *Formula) (Assignment, error)

// Solve calls fn(ctx, f).
func (fn Func) Solve(ctx context.Context, f *Formula) (Assignment, error) {
	return fn(ctx, f)
}

// Backend names accepted by [New].
const (
	BackendGophersat  = "gophersat"
	BackendStratified = "stratified"
)

// New returns the oracle registered under name. The empty name selects
// Gophersat.
func New(name string, logger *log.Logger) (Oracle, error) {
	switch strings.ToLower(name) {
	case "", BackendGophersat:
		return &Gophersat{Logger: logger}, nil
	case BackendStratified, "gini":
		return &Stratified{Logger: logger}, nil
	}
	return nil, hcerrors.New(hcerrors.ErrCodeInvalidInput,
		"unknown maxsat backend %q (must be one of: %s, %s)", name, BackendGophersat, BackendStratified)
}

func prepare(ctx context.Context, backend string, f *Formula) error {
	if f == nil {
		return hcerrors.New(hcerrors.ErrCodeEncoding, "%s: nil formula", backend)
	}
	if err := ctx.Err(); err != nil {
		return hcerrors.Wrap(hcerrors.ErrCodeOracle, err, "%s: not started", backend)
	}
	return f.Validate()
}

func infeasible(backend string, f *Formula) error {
	return hcerrors.New(hcerrors.ErrCodeInfeasible,
		"%s: hard clauses unsatisfiable (%d variables, %d hard clauses)", backend, f.NumVars, len(f.Hard))
}

// verify guards against models that do not satisfy the hard part, which
// would otherwise surface much later as a decoding failure.
func verify(backend string, f *Formula, a Assignment) error {
	if len(a) != f.NumVars+1 {
		return hcerrors.New(hcerrors.ErrCodeOracle, "%s: assignment has %d entries, want %d", backend, len(a), f.NumVars+1)
	}
	if !f.Satisfies(a) {
		return hcerrors.New(hcerrors.ErrCodeOracle, "%s: model violates hard clauses", backend)
	}
	return nil
}

func recovered(backend string, r any) error {
	return hcerrors.Wrap(hcerrors.ErrCodeOracle, fmt.Errorf("%v", r), "%s: solver panic", backend)
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
