package enums

// OrderStatus is a free-form order label. The constants are the labels the
// shop uses today; any other non-blank label is accepted and no transition
// rules apply.
type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)
