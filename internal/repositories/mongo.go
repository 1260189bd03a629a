package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names used by the MongoDB backend.
const (
	UsersCollection    = "users"
	StoresCollection   = "stores"
	ProductsCollection = "products"
)

const mongoTimeout = 5 * time.Second

func mongoContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, mongoTimeout)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
