package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/entities"
	"aircon-admin/pkg/utils"
)

// OrderItemInputDTO is one line of an order form. ID refers to an existing item
// and is zero for new lines. Quantity 0 means 1.
type OrderItemInputDTO struct {
	ID        uint64 `json:"id,omitempty"`
	ServiceID uint64 `json:"service_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type CreateOrderDTO struct {
	Name         *string             `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Address      string              `json:"address" validate:"required,min=3"`
	Phone        string              `json:"phone" validate:"required,phone"`
	Note         null.String         `json:"note" validate:"omitempty,max=2000"`
	BrandAC      string              `json:"brand_ac" validate:"required,max=100"`
	TechnicianID uint64              `json:"technician_id" validate:"required,gt=0"`
	VisitDate    string              `json:"visit_date" validate:"required,datetime=2006-01-02"`
	Status       *string             `json:"status,omitempty" validate:"omitempty,order_status"`
	TotalPrice   *string             `json:"total_price,omitempty"`
	Items        []OrderItemInputDTO `json:"items" validate:"omitempty,unique=ServiceID,dive"`
}

// UpdateOrderDTO is a partial update: nil fields are left unchanged.
// A non-nil Items replaces every line of the order; an empty Note clears it.
type UpdateOrderDTO struct {
	Name         *string             `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Address      *string             `json:"address,omitempty" validate:"omitempty,min=3"`
	Phone        *string             `json:"phone,omitempty" validate:"omitempty,phone"`
	Note         *string             `json:"note,omitempty" validate:"omitempty,max=2000"`
	BrandAC      *string             `json:"brand_ac,omitempty" validate:"omitempty,min=1,max=100"`
	TechnicianID *uint64             `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
	VisitDate    *string             `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status       *string             `json:"status,omitempty" validate:"omitempty,order_status"`
	TotalPrice   *string             `json:"total_price,omitempty"`
	Items        []OrderItemInputDTO `json:"items" validate:"omitempty,unique=ServiceID,dive"`
}

type AddOrderItemDTO struct {
	ServiceID uint64 `json:"service_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type UpdateOrderItemDTO struct {
	ServiceID *uint64 `json:"service_id,omitempty" validate:"omitempty,gt=0"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// QuoteOrderDTO prices a draft without saving it.
type QuoteOrderDTO struct {
	Items []OrderItemInputDTO `json:"items" validate:"dive"`
}

type BulkDeleteOrdersDTO struct {
	IDs []uint64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
}

type OrderItemDTO struct {
	ID           uint64          `json:"id"`
	ServiceID    uint64          `json:"service_id"`
	ServiceTitle string          `json:"service_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID              uint64          `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	Note            *string         `json:"note"`
	BrandAC         string          `json:"brand_ac"`
	TechnicianID    uint64          `json:"technician_id"`
	TechnicianName  string          `json:"technician_name"`
	TechnicianPhone string          `json:"technician_phone"`
	VisitDate       string          `json:"visit_date"`
	VisitDateLabel  string          `json:"visit_date_label"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	TotalPriceLabel string          `json:"total_price_label"`
	Status          *string         `json:"status,omitempty"`
	StatusColor     *string         `json:"status_color,omitempty"`
	Items           []OrderItemDTO  `json:"items,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// NewOrderDTO renders an order for role. Customers do not see the status.
func NewOrderDTO(o entities.Order, role authz.Role) OrderDTO {
	out := OrderDTO{
		ID:              o.ID,
		Name:            o.Name,
		Address:         o.Address,
		Phone:           o.Phone,
		Note:            o.Note.Ptr(),
		BrandAC:         o.BrandAC,
		TechnicianID:    o.TechnicianID,
		TechnicianName:  o.TechnicianName,
		TechnicianPhone: o.TechnicianPhone,
		VisitDate:       o.VisitDate.Format(utils.DateLayout),
		VisitDateLabel:  utils.FormatVisitDate(o.VisitDate),
		TotalPrice:      o.TotalPrice,
		TotalPriceLabel: utils.FormatRupiah(o.TotalPrice),
		CreatedAt:       formatTimestamp(o.CreatedAt),
		UpdatedAt:       formatTimestamp(o.UpdatedAt),
	}
	if role != authz.RoleCustomer {
		out.Status = utils.ToPtr(o.Status.String())
		out.StatusColor = utils.ToPtr(o.Status.Color())
	}
	if len(o.Items) > 0 {
		out.Items = make([]OrderItemDTO, len(o.Items))
		for i, item := range o.Items {
			out.Items[i] = OrderItemDTO{
				ID:           item.ID,
				ServiceID:    item.ServiceID,
				ServiceTitle: item.ServiceTitle,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				Subtotal:     item.Subtotal(),
			}
		}
	}
	return out
}

func NewOrderDTOs(orders []entities.Order, role authz.Role) []OrderDTO {
	out := make([]OrderDTO, len(orders))
	for i, o := range orders {
		out[i] = NewOrderDTO(o, role)
	}
	return out
}

type QuoteLineDTO struct {
	ServiceID uint64          `json:"service_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type QuoteDTO struct {
	Items      []QuoteLineDTO  `json:"items"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"total_label"`
}

type BulkDeleteResultDTO struct {
	Deleted int64 `json:"deleted"`
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(utils.DateTimeLayout)
}
