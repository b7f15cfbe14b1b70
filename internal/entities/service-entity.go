package entities

import (
	"aircon-admin/pkg/types"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry with its current price. Order items copy the price when they are created.
type Service struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	CategoryID   uint64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`

	types.BaseEntity
	types.SoftDelete
}
