package constants

// OrderStatus is the flat order lifecycle. Any value may follow any other.
type OrderStatus string

const (
	OrderStatusOrdering   OrderStatus = "ordering"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusComplete   OrderStatus = "complete"
)

var OrderStatuses = []OrderStatus{
	OrderStatusOrdering,
	OrderStatusProcessing,
	OrderStatusComplete,
}

func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Color is the badge colour shown next to the status in list views.
func (s OrderStatus) Color() string {
	switch s {
	case OrderStatusOrdering:
		return "primary"
	case OrderStatusProcessing:
		return "warning"
	case OrderStatusComplete:
		return "success"
	default:
		return "gray"
	}
}

func (s OrderStatus) String() string {
	return string(s)
}
