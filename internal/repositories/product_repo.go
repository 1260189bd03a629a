package repositories

import (
	"context"

	"zennexify/internal/models"
)

// ProductSortField names a sortable product attribute.
type ProductSortField string

const (
	SortByCreatedAt ProductSortField = "createdAt"
	SortByUpdatedAt ProductSortField = "updatedAt"
	SortByName      ProductSortField = "name"
	SortByPrice     ProductSortField = "price"
	SortByQuantity  ProductSortField = "quantity"
)

// ProductQuery selects one page of products. The record id breaks ties in
// the same direction as SortBy so that pages never overlap.
type ProductQuery struct {
	StoreID    string
	SortBy     ProductSortField
	Descending bool
	Offset     int
	Limit      int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// List returns the requested page and the number of products matching
	// the filter regardless of paging.
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
}
