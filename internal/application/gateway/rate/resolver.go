package rate

import (
	"context"

	"github.com/shopspring/decimal"

	"lldgw/internal/shared/logger"
)

// Resolver resolves the USD-per-LLD rate used for checkout conversion.
// Policy, in order: manual override, oracle quote, configured fallback.
// Resolve never fails; a single failed oracle call falls through to the
// fallback, trading accuracy for availability.
type Resolver struct {
	manualRate decimal.Decimal
	hasManual  bool
	oracle     Oracle
	fallback   decimal.Decimal
	logger     logger.Interface
}

// NewResolver builds a Resolver. manualRate and fallbackRate are decimal
// strings; an empty or non-positive manualRate means no override, and an
// invalid fallbackRate defaults to 1.0.
func NewResolver(manualRate, fallbackRate string, oracle Oracle, log logger.Interface) *Resolver {
	r := &Resolver{
		oracle:   oracle,
		fallback: decimal.NewFromInt(1),
		logger:   log,
	}

	if manualRate != "" {
		if d, err := decimal.NewFromString(manualRate); err == nil && d.IsPositive() {
			r.manualRate = d
			r.hasManual = true
		} else {
			log.Warnw("ignoring invalid manual LLD rate", "lld_rate", manualRate)
		}
	}

	if fallbackRate != "" {
		if d, err := decimal.NewFromString(fallbackRate); err == nil && d.IsPositive() {
			r.fallback = d
		} else {
			log.Warnw("ignoring invalid fallback rate, using 1.0", "fallback_rate", fallbackRate)
		}
	}

	return r
}

// Resolve returns a positive USD-per-LLD rate. It never returns an error.
func (r *Resolver) Resolve(ctx context.Context) decimal.Decimal {
	if r.hasManual {
		return r.manualRate
	}

	quote, err := r.oracle.USDPerLLD(ctx)
	if err != nil {
		r.logger.Warnw("rate oracle failed, using fallback rate",
			"error", err,
			"fallback_rate", r.fallback.String(),
		)
		return r.fallback
	}
	if !quote.IsPositive() {
		r.logger.Warnw("rate oracle returned non-positive quote, using fallback rate",
			"quote", quote.String(),
			"fallback_rate", r.fallback.String(),
		)
		return r.fallback
	}

	return quote
}
