// Package verification decides whether a matching paid transaction exists
// on chain for an order. It tolerates known remark format variance but
// delegates amount exactness to the chain-index service; it is read-only
// with respect to the chain.
package verification

import (
	"context"
	"fmt"

	"lldgw/internal/shared/logger"
)

// Match is one positive chain-index answer. TxHash is already decoded at
// the boundary and may carry the "unknown" sentinel.
type Match struct {
	Paid   bool
	TxHash string
}

// ChainIndex is the outbound verify-purchase query against the chain-index
// service. A nil error with Paid=false means the index answered but found
// no matching transfer; an error means the probe for this remark failed
// and the caller should move on to the next candidate.
type ChainIndex interface {
	VerifyPurchase(ctx context.Context, remark, pricePlancks, toAddress string) (*Match, error)
}

// Result is the outcome of a verification probe for one order.
type Result struct {
	Matched bool
	TxHash  string
	// Remark is the candidate that matched, kept for audit.
	Remark string
	// Attempts is the number of index queries issued.
	Attempts int
}

// RemarkCandidates returns the fixed, ordered list of remark variants a
// payer's wallet might have embedded for the order. Order matters: the
// engine probes them sequentially and stops at the first match.
func RemarkCandidates(orderID uint) []string {
	return []string{
		fmt.Sprintf("Order #%d", orderID),
		fmt.Sprintf("%d", orderID),
		fmt.Sprintf("order #%d", orderID),
		fmt.Sprintf("ORDER #%d", orderID),
		fmt.Sprintf("Order %d", orderID),
		fmt.Sprintf("Order#%d", orderID),
	}
}

// Engine probes the chain index with each remark candidate in order.
type Engine struct {
	index  ChainIndex
	logger logger.Interface
}

func NewEngine(index ChainIndex, log logger.Interface) *Engine {
	return &Engine{
		index:  index,
		logger: log,
	}
}

// Verify performs a linear probe over the remark candidates. Transport
// errors and non-200 answers skip to the next candidate; there is no retry
// within a candidate and no concurrent fan-out. The first paid answer
// short-circuits.
func (e *Engine) Verify(ctx context.Context, orderID uint, merchantAddress, expectedPlancks string) Result {
	attempts := 0
	for _, remark := range RemarkCandidates(orderID) {
		attempts++

		match, err := e.index.VerifyPurchase(ctx, remark, expectedPlancks, merchantAddress)
		if err != nil {
			e.logger.Debugw("chain-index probe failed, trying next remark",
				"order_id", orderID,
				"remark", remark,
				"error", err,
			)
			continue
		}
		if match == nil || !match.Paid {
			continue
		}

		e.logger.Infow("payment verified on chain",
			"order_id", orderID,
			"remark", remark,
			"tx_hash", match.TxHash,
		)
		return Result{
			Matched:  true,
			TxHash:   match.TxHash,
			Remark:   remark,
			Attempts: attempts,
		}
	}

	e.logger.Warnw("no matching transaction found",
		"order_id", orderID,
		"attempts", attempts,
	)
	return Result{Attempts: attempts}
}
