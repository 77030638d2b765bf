package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Message templates referenced by handler tests as well, so they live here
// rather than inline in ValidationMessage.
const (
	ErrRequired = "is required"
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrFuture   = "must be in the future"
	ErrEmail    = "must be a valid email address"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("future", validateFuture)

	return validator
}

func validateFuture(fl validator.FieldLevel) bool {
	showTime, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	return showTime.After(time.Now())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min", "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "future":
		return ErrFuture
	case "email":
		return ErrEmail
	default:
		return "is invalid"
	}
}
