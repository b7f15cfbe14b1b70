package entities

import (
	"aircon-admin/pkg/types"
)

type Permission struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	types.BaseEntity
}

type RolePermission struct {
	RoleID       uint64 `json:"role_id"`
	PermissionID uint64 `json:"permission_id"`
}
