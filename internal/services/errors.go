package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds returned by every service. Handlers map them to status codes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrStoreNotFound   = fmt.Errorf("store %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrUserExists      = fmt.Errorf("user %w", ErrConflict)
)

const (
	MsgFieldsRequired   = "All fields are required"
	MsgValidationFailed = "Validation failed"
)

// ValidationError describes rejected input field by field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// requireFields returns a ValidationError naming every empty field, or nil.
func requireFields(fields map[string]string) error {
	missing := make(map[string]string)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = "required"
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Message: MsgFieldsRequired, Fields: missing}
}
