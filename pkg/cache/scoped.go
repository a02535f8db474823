package cache

// ScopedKeyer wraps a Keyer with a prefix so that independent experiments
// can share one cache backend.
//
// Example usage:
//
//	// keep a benchmark run away from everyday results
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bench:2026-10:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OrderKey generates a prefixed order key.
func (k *ScopedKeyer) OrderKey(graphHash string, opts OrderKeyOpts) string {
	return k.prefix + k.inner.OrderKey(graphHash, opts)
}

// CountKey generates a prefixed count key.
func (k *ScopedKeyer) CountKey(graphHash string, opts CountKeyOpts) string {
	return k.prefix + k.inner.CountKey(graphHash, opts)
}
