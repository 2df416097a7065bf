package common

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("filename", validateFilename)
}

// ValidFilename reports whether name can be used as the base name of a
// stored upload: no path separators, no NUL, and not a dot entry.
func ValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." || len(name) > 255 {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

func validateFilename(fl validator.FieldLevel) bool {
	return ValidFilename(fl.Field().String())
}
