package results

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Defaults for the MongoDB ledger.
const (
	DefaultDatabase   = "hamcount"
	DefaultCollection = "counts"
)

// Mongo stores records in a MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and pings the server. Empty database and
// collection names use the defaults.
func OpenMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if uri == "" {
		return nil, hcerrors.New(hcerrors.ErrCodeInvalidInput, "mongo results backend needs a URI")
	}
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// Append inserts records in one batch.
func (m *Mongo) Append(ctx context.Context, records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = r
	}
	if _, err := m.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert records: %w", err)
	}
	return nil
}

// List returns matching records oldest first.
func (m *Mongo) List(ctx context.Context, f Filter) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := m.coll.Find(ctx, mongoFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

func mongoFilter(f Filter) bson.M {
	q := bson.M{}
	if f.RunID != "" {
		q["run_id"] = f.RunID
	}
	if f.Graph != "" {
		q["graph"] = f.Graph
	}
	if f.Mode != "" {
		q["mode"] = f.Mode
	}
	return q
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Ledger = (*Mongo)(nil)
