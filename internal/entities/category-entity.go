package entities

import (
	"aircon-admin/pkg/types"
)

type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity
	types.SoftDelete
}
