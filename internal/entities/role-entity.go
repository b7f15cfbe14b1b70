package entities

import (
	"aircon-admin/pkg/types"
)

type Role struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	types.BaseEntity
}
