// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about MaxSAT solves, orderings, counts and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the solver and
// counting packages stay free of any metrics framework. The Prometheus
// implementation lives in the prom subpackage.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New(prometheus.NewRegistry())
//	    observability.SetSolverHooks(m)
//	    observability.SetCountHooks(m)
//	    observability.SetCacheHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSolveStart(ctx, "gophersat", vertices, variables, clauses)
//	// ... solve ...
//	observability.Solver().OnSolveComplete(ctx, "gophersat", width, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the exact vertex-separation solver.
type SolverHooks interface {
	// OnSolveStart is called once the formula is built, before the oracle runs.
	OnSolveStart(ctx context.Context, backend string, vertices, variables, clauses int)

	// OnSolveComplete is called after decoding. width is -1 on error.
	OnSolveComplete(ctx context.Context, backend string, width int, duration time.Duration, err error)
}

// =============================================================================
// Count Hooks
// =============================================================================

// CountHooks receives events from the counting orchestrator.
type CountHooks interface {
	// Ordering events. width is -1 for heuristic strategies.
	OnOrderStart(ctx context.Context, strategy string, vertices int)
	OnOrderComplete(ctx context.Context, strategy string, width int, duration time.Duration, err error)

	// Enumeration events. mode is "paths" or "cycles".
	OnCountStart(ctx context.Context, mode string, vertices, edges int)
	OnCountComplete(ctx context.Context, mode string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, string, int, int, int)                {}
func (NoopSolverHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {}

// NoopCountHooks is a no-op implementation of CountHooks.
type NoopCountHooks struct{}

func (NoopCountHooks) OnOrderStart(context.Context, string, int)                          {}
func (NoopCountHooks) OnOrderComplete(context.Context, string, int, time.Duration, error) {}
func (NoopCountHooks) OnCountStart(context.Context, string, int, int)                     {}
func (NoopCountHooks) OnCountComplete(context.Context, string, time.Duration, error)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	countHooks  CountHooks  = NoopCountHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solve.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetCountHooks registers custom counting hooks.
// This should be called once at application startup before any count.
func SetCountHooks(h CountHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		countHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Count returns the registered counting hooks.
func Count() CountHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return countHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	countHooks = NoopCountHooks{}
	cacheHooks = NoopCacheHooks{}
}
