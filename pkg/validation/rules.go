package validation

import (
	"regexp"

	"aircon-admin/pkg/constants"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phoneRegexp = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

// registerRules registers the tags used in DTO struct tags.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("phone", isPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_gte0", isNonNegativeDecimal); err != nil {
		return err
	}
	return nil
}

// isPhoneNumber accepts local and international numbers with optional spaces or dashes.
func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegexp.MatchString(fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return constants.OrderStatus(fl.Field().String()).IsValid()
}

func isNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}
