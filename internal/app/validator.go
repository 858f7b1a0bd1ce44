package app

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func NewValidator() (*validator.Validate, error) {
	validate := validator.New()
	// report errors under the inbound parameter name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})

	if err := validate.RegisterValidation("printable", validatePrintable); err != nil {
		return nil, fmt.Errorf("error while register validation `printable` | %w", err)
	}

	return validate, nil
}

func MustValidate() *validator.Validate {
	validate, err := NewValidator()
	if err != nil {
		panic(err)
	}

	return validate
}

// validatePrintable rejects control characters, which have no place in a movie title.
func validatePrintable(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsControl(r) {
			return false
		}
	}

	return true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "printable":
		return "must not contain control characters"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
