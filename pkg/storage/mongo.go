package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tabmind/pkg/config"
)

// mongoDocument is the stored record. Body holds the JSON snapshot verbatim.
type mongoDocument struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend keeps the document in one record of a collection.
type MongoBackend struct {
	client     *mongo.Client
	collection *mongo.Collection
	id         string
	uri        string
}

// NewMongoBackend connects to cfg.URI and pings the primary, retrying
// transient failures.
func NewMongoBackend(ctx context.Context, cfg config.Mongo) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoBackend{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		id:         cfg.Document,
		uri:        cfg.Database + "." + cfg.Collection + "/" + cfg.Document,
	}, nil
}

// Load finds the record by id. A missing record reports not found.
func (b *MongoBackend) Load(ctx context.Context) ([]byte, bool, error) {
	var doc mongoDocument
	err := b.collection.FindOne(ctx, bson.M{"_id": b.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find %s: %w", b.id, err)
	}
	return []byte(doc.Body), true, nil
}

// Save replaces the record, inserting it on first use.
func (b *MongoBackend) Save(ctx context.Context, data []byte) error {
	doc := mongoDocument{ID: b.id, Body: string(data), UpdatedAt: time.Now().UTC()}
	_, err := b.collection.ReplaceOne(ctx, bson.M{"_id": b.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace %s: %w", b.id, err)
	}
	return nil
}

// Close disconnects the client.
func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

func (b *MongoBackend) String() string { return location("mongo", b.uri) }

var _ Backend = (*MongoBackend)(nil)
