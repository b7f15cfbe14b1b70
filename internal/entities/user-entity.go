package entities

import (
	"aircon-admin/pkg/types"
)

type User struct {
	ID       uint64 `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	RoleID   uint64 `json:"role_id" db:"role_id"`
	RoleName string `json:"role_name" db:"role_name"`

	types.BaseEntity
	types.SoftDelete
}
