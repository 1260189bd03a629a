package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"zennexify/internal/models"
	"zennexify/internal/repositories"
	"zennexify/pkg/logger"
)

// Paging defaults for ListProducts. Larger limits are clamped to MaxLimit.
const (
	DefaultLimit = 10
	DefaultPage  = 1
	MaxLimit     = 100
)

// NewProduct is the input of CreateProduct. Quantity and Price are pointers
// so that zero can be told apart from absent.
type NewProduct struct {
	StoreID     string
	Name        string
	Description string
	Quantity    *int
	Price       *float64
	Status      models.ProductStatus
}

// ProductListParams are the raw listing parameters as received.
type ProductListParams struct {
	StoreID   string
	SortBy    string
	SortOrder string
	Limit     string
	Page      string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"totalProducts"`
	TotalPages    int64            `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	stores   repositories.StoreRepository
	products repositories.ProductRepository
	events   EventPublisher
	log      *logger.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(stores repositories.StoreRepository, products repositories.ProductRepository, events EventPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		stores:   stores,
		products: products,
		events:   events,
		log:      log,
	}
}

// CreateProduct adds a product to a store the caller owns.
func (s *ProductService) CreateProduct(ctx context.Context, actorID string, in NewProduct) (*models.Product, error) {
	if err := validateNewProduct(in); err != nil {
		return nil, err
	}

	store, err := s.stores.GetByID(ctx, in.StoreID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to look up store: %w", err)
	}
	if store.OwnerID != actorID {
		return nil, ErrForbidden
	}

	status := in.Status
	if status == "" {
		status = models.ProductActive
	}
	product := &models.Product{
		StoreID:     store.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
		Status:      status,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.WithOp("CreateProduct").WithField("product_id", product.ID).Info("product created")
	publishEvent(s.events, s.log, EventProductCreated, map[string]string{
		"id":      product.ID,
		"storeId": product.StoreID,
	})
	return product, nil
}

func validateNewProduct(in NewProduct) error {
	missing := map[string]string{
		"store_id": in.StoreID,
		"name":     in.Name,
	}
	if in.Quantity == nil {
		missing["quantity"] = ""
	}
	if in.Price == nil {
		missing["price"] = ""
	}
	if err := requireFields(missing); err != nil {
		return err
	}

	invalid := make(map[string]string)
	if *in.Quantity < 0 {
		invalid["quantity"] = "must not be negative"
	}
	if *in.Price < 0 {
		invalid["price"] = "must not be negative"
	}
	if !validStatus(in.Status) {
		invalid["status"] = "must be one of active, inactive, out_of_stock"
	}
	if len(invalid) > 0 {
		return &ValidationError{Message: MsgValidationFailed, Fields: invalid}
	}
	return nil
}

func validStatus(status models.ProductStatus) bool {
	switch status {
	case "", models.ProductActive, models.ProductInactive, models.ProductOutOfStock:
		return true
	}
	return false
}

// GetProduct returns a product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts returns one page of products, optionally limited to a store.
// A page past the end is empty rather than an error.
func (s *ProductService) ListProducts(ctx context.Context, params ProductListParams) (*ProductPage, error) {
	limit := min(parsePositive(params.Limit, DefaultLimit), MaxLimit)
	page := parsePositive(params.Page, DefaultPage)

	products, total, err := s.products.List(ctx, repositories.ProductQuery{
		StoreID:    strings.TrimSpace(params.StoreID),
		SortBy:     ParseSortField(params.SortBy),
		Descending: !strings.EqualFold(params.SortOrder, "asc"),
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{
		Products:      products,
		TotalProducts: total,
		TotalPages:    TotalPages(total, limit),
		CurrentPage:   page,
	}, nil
}

// ParseSortField maps a query value to a sort field. Unknown values sort by
// creation time.
func ParseSortField(value string) repositories.ProductSortField {
	switch value {
	case "updatedAt", "updated_at":
		return repositories.SortByUpdatedAt
	case "name":
		return repositories.SortByName
	case "price":
		return repositories.SortByPrice
	case "quantity":
		return repositories.SortByQuantity
	default:
		return repositories.SortByCreatedAt
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total-1)/int64(limit) + 1
}

// pageOffset is (page-1)*limit, saturating at an offset past any stored row.
func pageOffset(page, limit int) int {
	if page-1 > (math.MaxInt-limit)/limit {
		return math.MaxInt - limit
	}
	return (page - 1) * limit
}

func parsePositive(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
