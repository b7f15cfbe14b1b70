package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerNullTypes lets rules see through null.* wrappers and decimal.Decimal.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	// Decimals are validated as their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(decimal.Decimal); ok {
			return val.String()
		}
		return nil
	}, decimal.Decimal{})
}
