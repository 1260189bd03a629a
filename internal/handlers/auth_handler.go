package handlers

import (
	"time"

	"zennexify/internal/middleware"
	"zennexify/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	respond      *Responder
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, respond *Responder, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validate:     newValidator(),
		respond:      respond,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers the authentication routes. auth guards the routes
// that need a caller.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/signUp", h.HandleSignUp)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
	router.Get("/me", auth, h.HandleMe)
	router.Post("/userInformation", auth, h.HandleUserInformation)
}

// SignUpRequest is the body of POST /signUp.
type SignUpRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,max=72"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	PANCard    string `json:"PAN_card" validate:"omitempty,pan"`
	AadharCard string `json:"Aadhar_card" validate:"omitempty,aadhar"`
	Phone      string `json:"phone" validate:"omitempty,phone_in"`
	GstID      string `json:"Gst_id" validate:"omitempty,gstin"`
}

// HandleSignUp registers a user and logs them in.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond.BadBody(c, err)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return h.respond.Error(c, "HandleSignUp", err)
	}
	dob, err := parseDate(req.DOB, "dob")
	if err != nil {
		return h.respond.Error(c, "HandleSignUp", err)
	}

	user, err := h.authService.Register(c.UserContext(), services.Registration{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		DOB:        dob,
		PANCard:    req.PANCard,
		AadharCard: req.AadharCard,
		Phone:      req.Phone,
		GstID:      req.GstID,
	})
	if err != nil {
		return h.respond.Error(c, "HandleSignUp", err)
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return h.respond.Error(c, "HandleSignUp", err)
	}
	h.setTokenCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User signed up successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond.BadBody(c, err)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return h.respond.Error(c, "HandleLogin", err)
	}

	token, _, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.respond.Error(c, "HandleLogin", err)
	}
	h.setTokenCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout clears the token cookie. Tokens are stateless, so one that
// was copied elsewhere stays valid until it expires.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.respond.Error(c, "HandleMe", err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UserInformationRequest is the body of POST /userInformation.
type UserInformationRequest struct {
	UserID     string `json:"userId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	PANCard    string `json:"PAN_card" validate:"required,pan"`
	AadharCard string `json:"Aadhar_card" validate:"required,aadhar"`
	Phone      string `json:"phone" validate:"required,phone_in"`
	GstID      string `json:"Gst_id" validate:"required,gstin"`
	DOB        string `json:"dob"`
	Password   string `json:"password" validate:"omitempty,max=72"`
}

// HandleUserInformation updates the caller's identity details.
func (h *AuthHandler) HandleUserInformation(c *fiber.Ctx) error {
	var req UserInformationRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond.BadBody(c, err)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return h.respond.Error(c, "HandleUserInformation", err)
	}
	dob, err := parseDate(req.DOB, "dob")
	if err != nil {
		return h.respond.Error(c, "HandleUserInformation", err)
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), middleware.UserID(c), req.UserID, services.ProfileInput{
		Name:       req.Name,
		DOB:        dob,
		PANCard:    req.PANCard,
		AadharCard: req.AadharCard,
		Phone:      req.Phone,
		GstID:      req.GstID,
		Password:   req.Password,
	})
	if err != nil {
		return h.respond.Error(c, "HandleUserInformation", err)
	}

	return c.JSON(fiber.Map{
		"message": "User information updated successfully",
		"user":    user,
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.DefaultTokenTTL),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
