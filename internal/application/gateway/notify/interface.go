package notify

import "context"

// PaymentDetails carries everything the confirmation messages need.
type PaymentDetails struct {
	OrderID       uint
	BillingName   string
	BillingEmail  string
	DisplayAmount string
	TxHash        string
	ExplorerURL   string
	Network       string
}

// Sink delivers payment confirmation notifications. Implementations are
// invoked at most once per order; the caller guards that with the
// persisted emails-sent flag.
type Sink interface {
	NotifyAdmin(ctx context.Context, details PaymentDetails) error
	NotifyCustomer(ctx context.Context, details PaymentDetails) error
}
