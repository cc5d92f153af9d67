package serverutils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"lit-mashup-be/internal/dto"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts the first failure
// into a ValidationError.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return &dto.ValidationError{
			Field:  strings.ToLower(first.Field()),
			Reason: "failed on rule '" + first.Tag() + "'",
		}
	}
	return &dto.ValidationError{Field: "body", Reason: err.Error()}
}
