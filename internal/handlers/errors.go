package handlers

import (
	"errors"
	"strings"
	"unicode"

	"zennexify/internal/services"
	"zennexify/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "An internal server error occurred"

// Responder writes service errors as JSON responses.
type Responder struct {
	log *logger.Logger
	// ExposeInternalErrors adds the error text to 500 responses.
	ExposeInternalErrors bool
}

// NewResponder creates a Responder.
func NewResponder(log *logger.Logger, exposeInternalErrors bool) *Responder {
	return &Responder{log: log, ExposeInternalErrors: exposeInternalErrors}
}

// Error maps err onto a status code and writes it.
func (r *Responder) Error(c *fiber.Ctx, op string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"message": verr.Message}
		if len(verr.Fields) > 0 {
			body["errors"] = verr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": services.MsgFieldsRequired})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": sentence(err.Error())})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": sentence(err.Error())})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email or password"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You are not allowed to access this resource"})
	}

	r.log.WithOp(op).WithError(err).Error("request failed")
	body := fiber.Map{"message": internalErrorMessage}
	if r.ExposeInternalErrors {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// BadBody answers a request whose body could not be parsed.
func (r *Responder) BadBody(c *fiber.Ctx, err error) error {
	body := fiber.Map{"message": "Invalid request body"}
	if r.ExposeInternalErrors {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// FiberErrorHandler handles errors that escape a handler, including
// recovered panics.
func (r *Responder) FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	return r.Error(c, "fiber", err)
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return strings.TrimSpace(string(runes))
}
