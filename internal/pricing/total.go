// Package pricing derives an order's total from its line items.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Line is one order item as seen by the pricing rule.
type Line struct {
	ServiceID uint64
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) counts() bool {
	return l.ServiceID != 0 && l.Quantity > 0
}

func (l Line) Subtotal() decimal.Decimal {
	if !l.counts() {
		return decimal.Zero
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RecomputeTotal sums quantity times unit price. Lines without a service or with no quantity add nothing.
func RecomputeTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// PriceLookup resolves the current catalog price of a service.
type PriceLookup interface {
	ServicePrice(ctx context.Context, serviceID uint64) (decimal.Decimal, error)
}

// CapturePrice returns the price to snapshot onto a new line. A failed lookup yields zero.
func CapturePrice(ctx context.Context, lookup PriceLookup, serviceID uint64) decimal.Decimal {
	if serviceID == 0 || lookup == nil {
		return decimal.Zero
	}
	price, err := lookup.ServicePrice(ctx, serviceID)
	if err != nil {
		return decimal.Zero
	}
	return price
}
