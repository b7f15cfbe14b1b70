package entities

import (
	"time"

	"aircon-admin/pkg/constants"
	"aircon-admin/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	Address      string                `json:"address"`
	Phone        string                `json:"phone"`
	Note         null.String           `json:"note"`
	BrandAC      string                `json:"brand_ac"`
	TechnicianID uint64                `json:"technician_id"`
	VisitDate    time.Time             `json:"visit_date"`
	TotalPrice   decimal.Decimal       `json:"total_price"`
	Status       constants.OrderStatus `json:"status"`

	// Read model only.
	TechnicianName  string `json:"technician_name,omitempty"`
	TechnicianPhone string `json:"technician_phone,omitempty"`

	Items []OrderItem `json:"items,omitempty"`

	types.BaseEntity
	types.SoftDelete
}

type OrderItem struct {
	ID        uint64          `json:"id"`
	OrderID   uint64          `json:"order_id"`
	ServiceID uint64          `json:"service_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Read model only.
	ServiceTitle string `json:"service_title,omitempty"`

	types.BaseEntity
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
