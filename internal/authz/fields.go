package authz

// OrderField names an order field by its JSON name.
type OrderField string

const (
	FieldName         OrderField = "name"
	FieldAddress      OrderField = "address"
	FieldPhone        OrderField = "phone"
	FieldNote         OrderField = "note"
	FieldBrandAC      OrderField = "brand_ac"
	FieldTechnicianID OrderField = "technician_id"
	FieldVisitDate    OrderField = "visit_date"
	FieldStatus       OrderField = "status"
	FieldItems        OrderField = "items"
	FieldTotalPrice   OrderField = "total_price"
)

var OrderFields = []OrderField{
	FieldName, FieldAddress, FieldPhone, FieldNote, FieldBrandAC,
	FieldTechnicianID, FieldVisitDate, FieldStatus, FieldItems, FieldTotalPrice,
}

// FieldEditable reports whether role may write field. total_price is derived and never writable.
// A customer's name is always their own and is filled in by the service.
func FieldEditable(role Role, field OrderField) bool {
	if field == FieldTotalPrice {
		return false
	}
	switch role {
	case RoleStaff:
		return true
	case RoleCustomer:
		return field != FieldStatus && field != FieldName
	case RoleTechnician:
		return field == FieldStatus || field == FieldNote
	default:
		return false
	}
}

func EditableFields(role Role) []OrderField {
	out := make([]OrderField, 0, len(OrderFields))
	for _, f := range OrderFields {
		if FieldEditable(role, f) {
			out = append(out, f)
		}
	}
	return out
}
