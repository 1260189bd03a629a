package handlers

import (
	"zennexify/internal/middleware"
	"zennexify/internal/models"
	"zennexify/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for stores.
type StoreHandler struct {
	storeService *services.StoreService
	validate     *validator.Validate
	respond      *Responder
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService, respond *Responder) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validate:     newValidator(),
		respond:      respond,
	}
}

// RegisterRoutes registers the store routes, all behind auth.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/stores", auth, h.HandleCreateStore)
	router.Get("/stores", auth, h.HandleListStores)
}

// LocationRequest is a store address as received.
type LocationRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required,zip"`
	Country string `json:"country" validate:"required"`
}

// CreateStoreRequest is the body of POST /stores.
type CreateStoreRequest struct {
	Username string           `json:"username" validate:"required"`
	Location *LocationRequest `json:"location" validate:"required"`
	Contact  string           `json:"contact" validate:"required,phone_in"`
}

// HandleCreateStore creates a store for the caller.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond.BadBody(c, err)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return h.respond.Error(c, "HandleCreateStore", err)
	}

	store, err := h.storeService.CreateStore(c.UserContext(), middleware.UserID(c), services.NewStore{
		Username: req.Username,
		Location: models.Location{
			Street:  req.Location.Street,
			City:    req.Location.City,
			State:   req.Location.State,
			Zip:     req.Location.Zip,
			Country: req.Location.Country,
		},
		Contact: req.Contact,
	})
	if err != nil {
		return h.respond.Error(c, "HandleCreateStore", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created successfully",
		"store":   store,
	})
}

// HandleListStores lists the stores of ?username=.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username is required"})
	}

	stores, err := h.storeService.ListStores(c.UserContext(), username)
	if err != nil {
		return h.respond.Error(c, "HandleListStores", err)
	}

	return c.JSON(fiber.Map{
		"message": "Stores retrieved successfully",
		"stores":  stores,
	})
}
