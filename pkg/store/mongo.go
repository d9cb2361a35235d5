package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wordcloud/pkg/cache"
)

const (
	defaultMongoDatabase = "wordcloud"
	layoutsCollection    = "layouts"
)

// MongoStore stores records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord carries the seed as int64; BSON has no unsigned 64-bit type.
type mongoRecord struct {
	Record `bson:",inline"`
	Seed   int64 `bson:"seed"`
}

// OpenMongo connects to uri, retrying transient failures, and ensures the
// created_at index exists.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo store requires a URI")
	}
	if database == "" {
		database = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("ping mongo: %w", err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	coll := client.Database(database).Collection(layoutsCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create mongo index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save implements [Store].
func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec)
	doc := mongoRecord{Record: *rec, Seed: int64(rec.Seed)}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert layout: %w", err)
	}
	return nil
}

// Get implements [Store].
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return doc.record(), nil
}

// List implements [Store].
func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	out := make([]Record, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].record())
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (d *mongoRecord) record() *Record {
	rec := d.Record
	rec.Seed = uint64(d.Seed)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec
}

var _ Store = (*MongoStore)(nil)
