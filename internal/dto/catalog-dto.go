package dto

import (
	"github.com/shopspring/decimal"

	"aircon-admin/internal/entities"
	"aircon-admin/pkg/utils"
)

type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type UpdateCategoryDTO struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type CategoryDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewCategoryDTO(c entities.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
}

type CreateServiceDTO struct {
	Title      string          `json:"title" validate:"required,min=2,max=255"`
	CategoryID uint64          `json:"category_id" validate:"required,gt=0"`
	Price      decimal.Decimal `json:"price" validate:"decimal_gte0"`
}

type UpdateServiceDTO struct {
	Title      string          `json:"title" validate:"required,min=2,max=255"`
	CategoryID uint64          `json:"category_id" validate:"required,gt=0"`
	Price      decimal.Decimal `json:"price" validate:"decimal_gte0"`
}

type ServiceDTO struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	CategoryID   uint64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	PriceLabel   string          `json:"price_label"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewServiceDTO(s entities.Service) ServiceDTO {
	return ServiceDTO{
		ID:           s.ID,
		Title:        s.Title,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Price:        s.Price,
		PriceLabel:   utils.FormatRupiah(s.Price),
		CreatedAt:    formatTimestamp(s.CreatedAt),
		UpdatedAt:    formatTimestamp(s.UpdatedAt),
	}
}
