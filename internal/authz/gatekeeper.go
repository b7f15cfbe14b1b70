package authz

// Gatekeeper checks capability grants that were already resolved for an actor.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

func (g *Gatekeeper) Can(perms map[string]bool, permission string) bool {
	if permission == "" {
		return false
	}
	return perms[permission]
}

func PermissionSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
