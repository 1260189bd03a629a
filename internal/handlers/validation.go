package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"zennexify/internal/models"
	"zennexify/internal/services"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// newValidator returns a validator that knows the identity and contact
// formats and reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, pattern := range map[string]*regexp.Regexp{
		"pan":      models.PANPattern,
		"aadhar":   models.AadharPattern,
		"phone_in": models.PhonePattern,
		"gstin":    models.GSTINPattern,
		"zip":      models.ZipCodePattern,
	} {
		pattern := pattern
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pattern.MatchString(fl.Field().String())
		})
	}
	return v
}

// validateStruct converts validator failures into a services.ValidationError.
// Any missing required field makes the whole request "All fields are
// required"; otherwise it is "Validation failed".
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	message := services.MsgValidationFailed
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			message = services.MsgFieldsRequired
		}
		fields[fieldPath(e.Namespace())] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &services.ValidationError{Message: message, Fields: fields}
}

// fieldPath drops the struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// parseDate parses an optional yyyy-mm-dd value.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, &services.ValidationError{
			Message: services.MsgValidationFailed,
			Fields:  map[string]string{field: "must be a date in the form YYYY-MM-DD"},
		}
	}
	return &t, nil
}
