package constants

//============== CACHE KEYS ==============

const (
	// Role grants as a JSON array of permission keys.
	// Format: auth:permissions:role:<role name>
	CacheKeyRolePermissions = "auth:permissions:role:%s"
)

//============== ORDER OPERATIONS ==============

// Labels for the order operation counter.
const (
	OperationOrderCreate     = "create"
	OperationOrderUpdate     = "update"
	OperationOrderItemAdd    = "item_add"
	OperationOrderItemUpdate = "item_update"
	OperationOrderItemRemove = "item_remove"
	OperationOrderDelete     = "delete"
	OperationOrderBulkDelete = "bulk_delete"
	OperationOrderExport     = "export"
)
