package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"reviewhub/pkg/apperror"
)

// FormatValidationError turns a gin binding failure into per-field messages.
// Non-validator errors (malformed JSON and the like) land under "non_field".
func FormatValidationError(err error) apperror.FieldErrors {
	out := apperror.FieldErrors{}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			out.Add(fieldName(fe.Field()), fieldErrorMessage(fe))
		}
		return out
	}
	out.Add("non_field", err.Error())
	return out
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is not valid"
	}
}

func fieldName(field string) string {
	return strings.ToLower(field)
}
