// Package cache memoises vertex orders and Hamiltonian counts.
//
// Solving a separation model or counting a large grid can take minutes, while
// the result is a few hundred bytes. Entries are keyed by the SHA-256 of the
// graph's JSON encoding plus the parameters that influence the result, so a
// hit does not depend on where the graph came from.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared cache for batch runs on several machines
//
// # Keys
//
// A [Keyer] turns a graph hash and options into a key:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.CountKey(cache.Hash(data), cache.CountKeyOpts{Traversal: "bfs"})
//
// [NewScopedKeyer] prefixes every key, which keeps separate experiments apart
// in one shared Redis database.
package cache

import (
	"context"
	"time"
)

// TTLOrder is the default lifetime of cached orders. Counts never go stale
// and are stored without expiry.
const TTLOrder = 30 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// OrderKey identifies the vertex order of a graph.
	OrderKey(graphHash string, opts OrderKeyOpts) string

	// CountKey identifies a Hamiltonian count of a graph.
	CountKey(graphHash string, opts CountKeyOpts) string
}

// OrderKeyOpts holds the parameters that influence a vertex order.
type OrderKeyOpts struct {
	Strategy   string `json:"strategy"`
	Stratified bool   `json:"stratified,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
}

// CountKeyOpts holds the parameters that influence a count.
type CountKeyOpts struct {
	Order     OrderKeyOpts `json:"order"`
	Traversal string       `json:"traversal"`
	Cycle     bool         `json:"cycle,omitempty"`
	Source    string       `json:"source,omitempty"`
	Sink      string       `json:"sink,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OrderKey implements Keyer.
func (DefaultKeyer) OrderKey(graphHash string, opts OrderKeyOpts) string {
	return hashKey("order", graphHash, opts)
}

// CountKey implements Keyer.
func (DefaultKeyer) CountKey(graphHash string, opts CountKeyOpts) string {
	return hashKey("count", graphHash, opts)
}
