package repositories

import (
	"context"
	"fmt"
	"time"

	"zennexify/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStoreRepository stores stores in the "stores" collection.
type MongoStoreRepository struct {
	coll *mongo.Collection
}

// NewMongoStoreRepository creates a new instance of MongoStoreRepository.
func NewMongoStoreRepository(db *mongo.Database) *MongoStoreRepository {
	return &MongoStoreRepository{coll: db.Collection(StoresCollection)}
}

// Create inserts a new store document.
func (r *MongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	store.UpdatedAt = now

	ctx, cancel := mongoContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, store); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a store by ID.
func (r *MongoStoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	ctx, cancel := mongoContext(ctx)
	defer cancel()

	var store models.Store
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&store); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("store %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// ListByOwner returns the owner's stores oldest first.
func (r *MongoStoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Store, error) {
	ctx, cancel := mongoContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores of owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	stores := make([]models.Store, 0)
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}
	return stores, nil
}
