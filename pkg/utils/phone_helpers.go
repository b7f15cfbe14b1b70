package utils

import (
	"regexp"
	"strings"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizePhoneNumber drops separators and keeps a leading plus sign.
func NormalizePhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	digitsOnly := nonDigitRegexp.ReplaceAllString(phone, "")
	if strings.HasPrefix(phone, "+") {
		return "+" + digitsOnly
	}
	return digitsOnly
}
