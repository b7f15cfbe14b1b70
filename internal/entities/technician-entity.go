package entities

import (
	"aircon-admin/pkg/types"
)

type Technician struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`

	types.BaseEntity
	types.SoftDelete
}
