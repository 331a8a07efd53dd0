package stock

import (
	"context"

	"lldgw/internal/domain/order"
)

// Adjuster reduces stock levels when a payment request is created, the
// same point the storefront would reserve inventory at checkout.
type Adjuster interface {
	ReduceStockLevels(ctx context.Context, o *order.Order) error
}
