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

var productFields = map[ProductSortField]string{
	SortByCreatedAt: "createdAt",
	SortByUpdatedAt: "updatedAt",
	SortByName:      "name",
	SortByPrice:     "price",
	SortByQuantity:  "quantity",
}

// MongoProductRepository stores products in the "products" collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	ctx, cancel := mongoContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := mongoContext(ctx)
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// List counts the matching documents and fetches one page of them.
func (r *MongoProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	ctx, cancel := mongoContext(ctx)
	defer cancel()

	filter := productFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, productFindOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func productFilter(q ProductQuery) bson.M {
	if q.StoreID == "" {
		return bson.M{}
	}
	return bson.M{"storeId": q.StoreID}
}

func productFindOptions(q ProductQuery) *options.FindOptions {
	field, ok := productFields[q.SortBy]
	if !ok {
		field = productFields[SortByCreatedAt]
	}
	direction := 1
	if q.Descending {
		direction = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: field, Value: direction}, {Key: "_id", Value: direction}}).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))
}
