// Package results keeps a ledger of finished counts.
//
// Every count run by the CLI can be appended to a ledger as a [Record]. One
// invocation shares a run ID (a UUID), so a `sequence` over twenty sizes
// shows up as twenty records with the same RunID.
//
// Backends:
//
//	none   records are discarded
//	jsonl  one JSON object per line in a local file
//	mongo  a MongoDB collection, for collecting runs from several machines
package results

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hamcount/pkg/buildinfo"
	"github.com/matzehuels/hamcount/pkg/counting"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Record is one ledger entry.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	RunID     string    `json:"run_id" bson:"run_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Version   string    `json:"version" bson:"version"`

	Graph     string `json:"graph" bson:"graph"`
	GraphHash string `json:"graph_hash" bson:"graph_hash"`
	Vertices  int    `json:"vertices" bson:"vertices"`
	Edges     int    `json:"edges" bson:"edges"`

	Strategy  string `json:"strategy" bson:"strategy"`
	Traversal string `json:"traversal" bson:"traversal"`
	Mode      string `json:"mode" bson:"mode"`
	Source    string `json:"source,omitempty" bson:"source,omitempty"`
	Sink      string `json:"sink,omitempty" bson:"sink,omitempty"`

	// Count is a decimal string; counts outgrow every integer type.
	Count string `json:"count" bson:"count"`
	Width int    `json:"width" bson:"width"`
	Exact bool   `json:"exact" bson:"exact"`

	OrderMillis int64 `json:"order_ms" bson:"order_ms"`
	CountMillis int64 `json:"count_ms" bson:"count_ms"`
	Cached      bool  `json:"cached" bson:"cached"`
}

// NewRunID returns a fresh run ID.
func NewRunID() string {
	return uuid.NewString()
}

// NewRecord converts a counting result into a ledger record.
func NewRecord(runID string, r *counting.Result) Record {
	count := "0"
	if r.Count != nil {
		count = r.Count.String()
	}
	return Record{
		ID:          uuid.NewString(),
		RunID:       runID,
		Timestamp:   time.Now().UTC(),
		Version:     buildinfo.Short(),
		Graph:       r.Graph,
		GraphHash:   r.GraphHash,
		Vertices:    r.Stats.Vertices,
		Edges:       r.Stats.Edges,
		Strategy:    string(r.Params.Strategy),
		Traversal:   string(r.Params.Traversal),
		Mode:        r.Params.Mode(),
		Source:      r.Params.Source,
		Sink:        r.Params.Sink,
		Count:       count,
		Width:       r.Width,
		Exact:       r.Exact,
		OrderMillis: r.Stats.OrderTime.Milliseconds(),
		CountMillis: r.Stats.CountTime.Milliseconds(),
		Cached:      r.CacheInfo.CountHit,
	}
}

// Filter selects records. Zero fields match everything.
type Filter struct {
	RunID string
	Graph string
	Mode  string
	Limit int
}

func (f Filter) match(r Record) bool {
	return (f.RunID == "" || r.RunID == f.RunID) &&
		(f.Graph == "" || r.Graph == f.Graph) &&
		(f.Mode == "" || r.Mode == f.Mode)
}

// Ledger stores records.
type Ledger interface {
	Append(ctx context.Context, records ...Record) error
	List(ctx context.Context, f Filter) ([]Record, error)
	Close() error
}

// Backend names.
const (
	BackendNone  = "none"
	BackendJSONL = "jsonl"
	BackendMongo = "mongo"
)

// Config selects and configures a ledger backend.
type Config struct {
	Backend    string
	Path       string
	MongoURI   string
	Database   string
	Collection string
}

// Open opens the ledger named by cfg.Backend. The empty backend is none.
func Open(ctx context.Context, cfg Config) (Ledger, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return Discard{}, nil
	case BackendJSONL:
		return OpenJSONL(cfg.Path)
	case BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	}
	return nil, hcerrors.New(hcerrors.ErrCodeInvalidInput,
		"unknown results backend %q (must be one of: none, jsonl, mongo)", cfg.Backend)
}

// Discard is a ledger that drops every record.
type Discard struct{}

func (Discard) Append(context.Context, ...Record) error        { return nil }
func (Discard) List(context.Context, Filter) ([]Record, error) { return nil, nil }
func (Discard) Close() error                                   { return nil }
