package authz

import "strings"

type Role string

const (
	RoleStaff      Role = "staff"
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
)

var Roles = []Role{RoleStaff, RoleCustomer, RoleTechnician}

// ParseRole reports false for names outside the fixed role set.
func ParseRole(name string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return r, false
}

func (r Role) String() string { return string(r) }

// Actor is the authenticated user on whose behalf an operation runs.
// For technicians ID doubles as the technician record id.
type Actor struct {
	ID   uint64
	Name string
	Role Role
}
