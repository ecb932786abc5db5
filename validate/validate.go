// Package validate contains custom validation functions
package validate

import (
	errs "errors"
	"reflect"
	"strings"

	"github.com/aviary-chat/accounts/errors"
	"github.com/go-playground/validator/v10"
)

// New is a function that creates a validator that reports fields by their
// column name rather than the Go struct field name
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return v
}

// Struct is a function that validates the given struct and reports the first
// violated field as a validation error
func Struct(s interface{}) error {
	err := New().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errs.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewValidation("payload", err.Error())
	}

	fe := fieldErrs[0]
	return errors.NewValidation(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed the " + fe.Tag() + " constraint"
	}
}
