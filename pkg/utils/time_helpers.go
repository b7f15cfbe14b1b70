package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	VisitDateLayout = "Monday, 02 January 2006"
	DateTimeLayout  = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

func FormatVisitDate(t time.Time) string {
	return t.Format(VisitDateLayout)
}

// FormatRupiah renders an amount as "Rp. 1.250.000" or "Rp. 1.250.000,50" when it has cents.
func FormatRupiah(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "Rp. " + sign + b.String()
	if fracPart != "00" {
		out += "," + fracPart
	}
	return out
}
