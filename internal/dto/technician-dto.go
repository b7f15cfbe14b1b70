package dto

import "aircon-admin/internal/entities"

type CreateTechnicianDTO struct {
	Name  string `json:"name" validate:"required,min=2,max=255"`
	Phone string `json:"phone" validate:"required,phone"`
}

type UpdateTechnicianDTO struct {
	Name  string `json:"name" validate:"required,min=2,max=255"`
	Phone string `json:"phone" validate:"required,phone"`
}

type TechnicianDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewTechnicianDTO(t entities.Technician) TechnicianDTO {
	return TechnicianDTO{
		ID:        t.ID,
		Name:      t.Name,
		Phone:     t.Phone,
		CreatedAt: formatTimestamp(t.CreatedAt),
		UpdatedAt: formatTimestamp(t.UpdatedAt),
	}
}
