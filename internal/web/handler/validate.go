package handler

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var commandNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewValidator returns a validator reporting fields by their json names
// and knowing the custom tags of the API.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// names are lowercased on write, so either case is accepted here
	_ = v.RegisterValidation("commandname", func(fl validator.FieldLevel) bool {
		return commandNamePattern.MatchString(fl.Field().String())
	})

	return v
}
