package valueobjects

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOnHold, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsPaid reports whether the order has reached a paid terminal state.
func (s OrderStatus) IsPaid() bool {
	return s == OrderStatusProcessing || s == OrderStatusCompleted
}

// AwaitingPayment reports whether the order can still accept a payment.
func (s OrderStatus) AwaitingPayment() bool {
	return s == OrderStatusOnHold
}

func (s OrderStatus) String() string {
	return string(s)
}
