package validators

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TagUsername = "username"

	UsernameMinLen = 3
	UsernameMaxLen = 50
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
// Field names in errors follow the json tag when one is present, and the
// "username" tag is registered for portfolio usernames.
func New() *Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation(TagUsername, func(fl validator.FieldLevel) bool {
		return IsUsername(fl.Field().String())
	})
	return validate
}

// IsUsername reports whether s is an acceptable username. Case is ignored.
func IsUsername(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < UsernameMinLen || len(s) > UsernameMaxLen {
		return false
	}
	return usernamePattern.MatchString(s)
}
