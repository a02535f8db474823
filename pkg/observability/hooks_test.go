package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Solver hooks
	s := NoopSolverHooks{}
	s.OnSolveStart(ctx, "gophersat", 9, 400, 1200)
	s.OnSolveComplete(ctx, "gophersat", 3, time.Second, nil)

	// Count hooks
	c := NoopCountHooks{}
	c.OnOrderStart(ctx, "pathwidth", 9)
	c.OnOrderComplete(ctx, "pathwidth", 3, time.Second, nil)
	c.OnCountStart(ctx, "paths", 9, 12)
	c.OnCountComplete(ctx, "paths", time.Second, errors.New("boom"))

	// Cache hooks
	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "order")
	k.OnCacheMiss(ctx, "count")
	k.OnCacheSet(ctx, "count", 64)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Solver() should return NoopSolverHooks by default")
	}
	if _, ok := Count().(NoopCountHooks); !ok {
		t.Error("Count() should return NoopCountHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customSolver := &testSolverHooks{}
	SetSolverHooks(customSolver)
	if Solver() != customSolver {
		t.Error("SetSolverHooks should set custom hooks")
	}

	customCount := &testCountHooks{}
	SetCountHooks(customCount)
	if Count() != customCount {
		t.Error("SetCountHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Reset() should restore NoopSolverHooks")
	}
	if _, ok := Count().(NoopCountHooks); !ok {
		t.Error("Reset() should restore NoopCountHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSolverHooks{}
	SetSolverHooks(custom)

	// Setting nil should be ignored
	SetSolverHooks(nil)

	if Solver() != custom {
		t.Error("SetSolverHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSolverHooks struct{ NoopSolverHooks }
type testCountHooks struct{ NoopCountHooks }
type testCacheHooks struct{ NoopCacheHooks }
