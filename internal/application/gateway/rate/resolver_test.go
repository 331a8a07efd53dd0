package rate

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lldgw/internal/shared/logger"
)

type fakeOracle struct {
	quote decimal.Decimal
	err   error
	calls int
}

func (f *fakeOracle) USDPerLLD(ctx context.Context) (decimal.Decimal, error) {
	f.calls++
	return f.quote, f.err
}

func TestResolveManualOverrideWins(t *testing.T) {
	oracle := &fakeOracle{quote: decimal.NewFromFloat(0.55)}
	r := NewResolver("0.25", "1.0", oracle, logger.NewNop())

	got := r.Resolve(context.Background())

	assert.Equal(t, "0.25", got.String())
	assert.Zero(t, oracle.calls, "manual override must not hit the oracle")
}

func TestResolveUsesOracleQuote(t *testing.T) {
	oracle := &fakeOracle{quote: decimal.NewFromFloat(0.42)}
	r := NewResolver("", "1.0", oracle, logger.NewNop())

	got := r.Resolve(context.Background())

	assert.Equal(t, "0.42", got.String())
	assert.Equal(t, 1, oracle.calls)
}

func TestResolveOracleFailureFallsBack(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("upstream down")}
	r := NewResolver("", "0.5", oracle, logger.NewNop())

	got := r.Resolve(context.Background())

	assert.Equal(t, "0.5", got.String())
}

func TestResolveNonPositiveQuoteFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		quote decimal.Decimal
	}{
		{"zero quote", decimal.Zero},
		{"negative quote", decimal.NewFromFloat(-0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{quote: tt.quote}
			r := NewResolver("", "0.75", oracle, logger.NewNop())

			got := r.Resolve(context.Background())

			assert.Equal(t, "0.75", got.String())
		})
	}
}

func TestResolveInvalidManualRateIgnored(t *testing.T) {
	oracle := &fakeOracle{quote: decimal.NewFromFloat(0.3)}

	for _, manual := range []string{"abc", "0", "-1"} {
		r := NewResolver(manual, "1.0", oracle, logger.NewNop())
		got := r.Resolve(context.Background())
		assert.Equal(t, "0.3", got.String(), "manual %q should be ignored", manual)
	}
}

func TestResolveInvalidFallbackDefaultsToOne(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("down")}
	r := NewResolver("", "not-a-number", oracle, logger.NewNop())

	got := r.Resolve(context.Background())

	assert.Equal(t, "1", got.String())
}
