package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstore/cart-engine/internal/domain"
)

// Connect opens a MongoDB connection suitable for the snapshot store.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type snapshotDoc struct {
	SessionID string           `bson:"session_id"`
	Items     []domain.Product `bson:"items"`
	CreatedAt time.Time        `bson:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

// MongoStore keeps the cart snapshot as one document per session in the
// carts collection.
type MongoStore struct {
	collection *mongo.Collection
	sessionID  string
}

func NewMongoStore(db *mongo.Database, sessionID string) *MongoStore {
	return &MongoStore{
		collection: db.Collection("carts"),
		sessionID:  sessionID,
	}
}

func (m *MongoStore) Load(ctx context.Context) (domain.Cart, error) {
	var doc snapshotDoc

	filter := bson.M{"session_id": m.sessionID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	return domain.Cart(doc.Items), nil
}

func (m *MongoStore) Save(ctx context.Context, cart domain.Cart) error {
	now := time.Now()

	filter := bson.M{"session_id": m.sessionID}
	update := bson.M{
		"$set": bson.M{
			"items":      []domain.Product(cart),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"session_id": m.sessionID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// CreateIndexes sets up the unique session index. Called once at startup.
func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
