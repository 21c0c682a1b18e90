package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/bazaar/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest runs struct-tag validation on a request body and converts
// the first failure into a caller-facing validation error.
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.Validation("invalid request body")
	}

	return apperr.Validation(formatFieldError(errs[0]))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
