package repositories

import (
	"context"

	"zennexify/internal/models"
)

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id string) (*models.Store, error)
	// ListByOwner returns the owner's stores oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Store, error)
}
