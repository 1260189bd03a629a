package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zennexify/internal/models"

	"github.com/google/uuid"
)

// MemoryStoreRepository is an in-memory implementation of StoreRepository.
type MemoryStoreRepository struct {
	stores []models.Store
	index  map[string]int
	mu     sync.RWMutex
}

// NewMemoryStoreRepository creates a new instance of MemoryStoreRepository.
func NewMemoryStoreRepository() *MemoryStoreRepository {
	return &MemoryStoreRepository{
		index: make(map[string]int),
	}
}

// Create appends a store, keeping insertion order.
func (r *MemoryStoreRepository) Create(ctx context.Context, store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if _, exists := r.index[store.ID]; exists {
		return fmt.Errorf("failed to create store %s: %w", store.ID, ErrDuplicate)
	}
	now := time.Now()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	store.UpdatedAt = now
	r.index[store.ID] = len(r.stores)
	r.stores = append(r.stores, *store)
	return nil
}

// GetByID returns a store by its ID.
func (r *MemoryStoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("store %s: %w", id, ErrNotFound)
	}
	store := r.stores[i]
	return &store, nil
}

// ListByOwner returns the owner's stores in insertion order.
func (r *MemoryStoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores := make([]models.Store, 0)
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			stores = append(stores, s)
		}
	}
	return stores, nil
}
