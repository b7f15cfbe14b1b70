package authz

type Action string

const (
	ActionView      Action = "view"
	ActionViewAny   Action = "view_any"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionDeleteAny Action = "delete_any"
)

var Actions = []Action{ActionView, ActionViewAny, ActionCreate, ActionUpdate, ActionDelete, ActionDeleteAny}

type Resource string

const (
	ResourceOrder      Resource = "order"
	ResourceTechnician Resource = "technician"
	ResourceService    Resource = "service"
	ResourceCategory   Resource = "category"
)

var Resources = []Resource{ResourceOrder, ResourceTechnician, ResourceService, ResourceCategory}

// PermissionKey builds "<action>_<resource>", e.g. "view_any_order".
func PermissionKey(action Action, resource Resource) string {
	return string(action) + "_" + string(resource)
}

// --- Keys used by the routes ---

var (
	OrdersViewAny   = PermissionKey(ActionViewAny, ResourceOrder)
	OrdersView      = PermissionKey(ActionView, ResourceOrder)
	OrdersCreate    = PermissionKey(ActionCreate, ResourceOrder)
	OrdersUpdate    = PermissionKey(ActionUpdate, ResourceOrder)
	OrdersDelete    = PermissionKey(ActionDelete, ResourceOrder)
	OrdersDeleteAny = PermissionKey(ActionDeleteAny, ResourceOrder)

	TechniciansViewAny = PermissionKey(ActionViewAny, ResourceTechnician)
	TechniciansView    = PermissionKey(ActionView, ResourceTechnician)
	TechniciansCreate  = PermissionKey(ActionCreate, ResourceTechnician)
	TechniciansUpdate  = PermissionKey(ActionUpdate, ResourceTechnician)
	TechniciansDelete  = PermissionKey(ActionDelete, ResourceTechnician)

	ServicesViewAny = PermissionKey(ActionViewAny, ResourceService)
	ServicesView    = PermissionKey(ActionView, ResourceService)
	ServicesCreate  = PermissionKey(ActionCreate, ResourceService)
	ServicesUpdate  = PermissionKey(ActionUpdate, ResourceService)
	ServicesDelete  = PermissionKey(ActionDelete, ResourceService)

	CategoriesViewAny = PermissionKey(ActionViewAny, ResourceCategory)
	CategoriesView    = PermissionKey(ActionView, ResourceCategory)
	CategoriesCreate  = PermissionKey(ActionCreate, ResourceCategory)
	CategoriesUpdate  = PermissionKey(ActionUpdate, ResourceCategory)
	CategoriesDelete  = PermissionKey(ActionDelete, ResourceCategory)
)

// AllPermissionKeys lists every action/resource combination.
func AllPermissionKeys() []string {
	keys := make([]string, 0, len(Actions)*len(Resources))
	for _, r := range Resources {
		for _, a := range Actions {
			keys = append(keys, PermissionKey(a, r))
		}
	}
	return keys
}

// DefaultGrants is the grant set the seeder installs for each role.
func DefaultGrants(role Role) []string {
	readCatalog := []string{
		CategoriesViewAny, CategoriesView,
		ServicesViewAny, ServicesView,
		TechniciansViewAny, TechniciansView,
	}

	switch role {
	case RoleStaff:
		return AllPermissionKeys()
	case RoleCustomer:
		return append([]string{
			OrdersViewAny, OrdersView, OrdersCreate, OrdersUpdate, OrdersDelete,
		}, readCatalog...)
	case RoleTechnician:
		return append([]string{
			OrdersViewAny, OrdersView, OrdersUpdate,
		}, readCatalog...)
	default:
		return nil
	}
}
