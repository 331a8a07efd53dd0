package order

import (
	"context"
	"errors"

	vo "lldgw/internal/domain/order/valueobjects"
)

// ErrNotFound is returned when an order id does not exist.
var ErrNotFound = errors.New("order not found")

// OrderRepository is the Order Store contract. The store's conditional
// updates are the serialization point for racing verification triggers;
// this system introduces no locks of its own.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)

	// MarkPaid transitions the order from on-hold to the given paid status
	// and records the transaction hash, atomically. It reports whether this
	// caller performed the transition; a false result with nil error means
	// another trigger won the race (or the order was never on-hold).
	MarkPaid(ctx context.Context, id uint, status vo.OrderStatus, txHash string) (bool, error)

	// MarkEmailsSent sets the emails-sent flag if it is not already set.
	// Reports whether this caller flipped the flag; the winner sends.
	MarkEmailsSent(ctx context.Context, id uint) (bool, error)

	// IsPaid is the cheap paid-state check used to short-circuit triggers
	// before any network call.
	IsPaid(ctx context.Context, id uint) (bool, error)

	// AppendNote attaches an audit note to the order.
	AppendNote(ctx context.Context, id uint, note string) error
}
