package rate

import (
	"context"

	"github.com/shopspring/decimal"
)

// Oracle quotes the current fiat price of one LLD from an external source.
type Oracle interface {
	// USDPerLLD returns the USD price of 1 LLD. Implementations must use a
	// bounded timeout and must not retry; the resolver handles failure.
	USDPerLLD(ctx context.Context) (decimal.Decimal, error)
}
