package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

const (
	storageCollection = "client_storage"
	connectTimeout    = 10 * time.Second
)

// Config selects the MongoDB deployment and database holding client storage.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connecting and index setup in Open. Zero means 10s.
	Timeout time.Duration
}

// Store keeps client state as one document per key in the client_storage
// collection, scoped by namespace.
type Store struct {
	client    *mongo.Client
	coll      *mongo.Collection
	namespace string
}

var _ ports.KeyValueStore = (*Store)(nil)

type storageEntry struct {
	Namespace string `bson:"namespace"`
	Key       string `bson:"key"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

// Open connects to MongoDB, checks that the primary is reachable, and
// creates the storage index.
func Open(ctx context.Context, cfg Config, namespace string) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("oaclient").
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := newStore(client.Database(cfg.Database).Collection(storageCollection), namespace)
	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func newStore(coll *mongo.Collection, namespace string) *Store {
	return &Store{
		client:    coll.Database().Client(),
		coll:      coll,
		namespace: namespace,
	}
}

// EnsureIndexes creates the unique (namespace, key) index. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "namespace", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create storage index: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var e storageEntry
	err := s.coll.FindOne(ctx, s.filter(key)).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find storage key %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	doc := storageEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, s.filter(key), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert storage key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	filter := bson.M{"namespace": s.namespace, "key": bson.M{"$in": keys}}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete storage keys: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) filter(key string) bson.M {
	return bson.M{"namespace": s.namespace, "key": key}
}
