package handlers

import (
	"zennexify/internal/middleware"
	"zennexify/internal/models"
	"zennexify/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	respond        *Responder
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, respond *Responder) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       newValidator(),
		respond:        respond,
	}
}

// RegisterRoutes registers the product routes, all behind auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/stores/products", auth, h.HandleCreateProduct)
	router.Get("/stores/products", auth, h.HandleListProducts)
	router.Get("/stores/products/:id", auth, h.HandleGetProduct)
}

// CreateProductRequest is the body of POST /stores/products. Quantity and
// price are pointers so that 0 counts as present.
type CreateProductRequest struct {
	StoreID     string   `json:"store_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity" validate:"required,min=0"`
	Price       *float64 `json:"price" validate:"required,min=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
}

// HandleCreateProduct adds a product to one of the caller's stores.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond.BadBody(c, err)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return h.respond.Error(c, "HandleCreateProduct", err)
	}

	product, err := h.productService.CreateProduct(c.UserContext(), middleware.UserID(c), services.NewProduct{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Status:      models.ProductStatus(req.Status),
	})
	if err != nil {
		return h.respond.Error(c, "HandleCreateProduct", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleListProducts returns one page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.productService.ListProducts(c.UserContext(), services.ProductListParams{
		StoreID:   c.Query("store_id"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Limit:     c.Query("limit"),
		Page:      c.Query("page"),
	})
	if err != nil {
		return h.respond.Error(c, "HandleListProducts", err)
	}

	return c.JSON(fiber.Map{
		"message":       "Products fetched successfully",
		"products":      page.Products,
		"totalProducts": page.TotalProducts,
		"totalPages":    page.TotalPages,
		"currentPage":   page.CurrentPage,
	})
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respond.Error(c, "HandleGetProduct", err)
	}
	return c.JSON(fiber.Map{"product": product})
}
