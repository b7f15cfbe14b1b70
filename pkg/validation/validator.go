package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps validator for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New builds the validator used by every request DTO. It panics when a rule cannot be registered.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Failures are reported under JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		panic("validation rules registration failed: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
