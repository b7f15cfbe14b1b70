package authz

import (
	"aircon-admin/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeAll
	scopeByName
	scopeByTechnician
)

// OrderScope is the row predicate deciding which orders an actor can see.
// Allows and Where express the same predicate, in memory and in SQL.
type OrderScope struct {
	kind         scopeKind
	name         string
	technicianID uint64
}

func ScopeVisibleOrders(actor Actor) OrderScope {
	switch actor.Role {
	case RoleStaff:
		return OrderScope{kind: scopeAll}
	case RoleCustomer:
		return OrderScope{kind: scopeByName, name: actor.Name}
	case RoleTechnician:
		return OrderScope{kind: scopeByTechnician, technicianID: actor.ID}
	default:
		return OrderScope{kind: scopeNone}
	}
}

func (s OrderScope) Allows(order *entities.Order) bool {
	if order == nil {
		return false
	}
	switch s.kind {
	case scopeAll:
		return true
	case scopeByName:
		return order.Name == s.name
	case scopeByTechnician:
		return order.TechnicianID == s.technicianID
	default:
		return false
	}
}

// Where renders the predicate against the orders table aliased as alias.
func (s OrderScope) Where(alias string) sq.Sqlizer {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	switch s.kind {
	case scopeAll:
		return sq.Expr("1 = 1")
	case scopeByName:
		return sq.Eq{col("name"): s.name}
	case scopeByTechnician:
		return sq.Eq{col("technician_id"): s.technicianID}
	default:
		return sq.Expr("1 = 0")
	}
}

func (s OrderScope) Unrestricted() bool {
	return s.kind == scopeAll
}
