package usecases

import (
	"context"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/application/gateway/verification"
	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/config"
	apperrors "lldgw/internal/shared/errors"
	"lldgw/internal/shared/logger"
)

// Verifier probes the chain index for a paid transaction matching the
// order. It never mutates anything.
type Verifier interface {
	Verify(ctx context.Context, orderID uint, merchantAddress, expectedPlancks string) verification.Result
}

// VerifyOrderPaymentUseCase is the completion state machine. All three
// trigger surfaces (webhook, poll, manual) funnel into Execute, which must
// converge to a single at-most-once paid transition no matter how many
// triggers race. The Order Store's conditional MarkPaid is the
// serialization point; no process-level lock spans the chain round-trip.
type VerifyOrderPaymentUseCase struct {
	orders   order.OrderRepository
	verifier Verifier
	notifier notify.Sink
	cfg      config.GatewayConfig
	logger   logger.Interface
}

func NewVerifyOrderPaymentUseCase(
	orders order.OrderRepository,
	verifier Verifier,
	notifier notify.Sink,
	cfg config.GatewayConfig,
	log logger.Interface,
) *VerifyOrderPaymentUseCase {
	return &VerifyOrderPaymentUseCase{
		orders:   orders,
		verifier: verifier,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
	}
}

type VerifyOrderPaymentResult struct {
	Verified    bool
	AlreadyPaid bool
	TxHash      string
}

func (uc *VerifyOrderPaymentUseCase) Execute(ctx context.Context, orderID uint, method vo.ConfirmationMethod) (*VerifyOrderPaymentResult, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == order.ErrNotFound {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, apperrors.NewInternalError("failed to load order", err.Error())
	}

	if o.PaymentMethod() != order.PaymentMethodLLD {
		return nil, apperrors.NewValidationError("order is not an LLD gateway order")
	}

	// Entry guard: repeated triggers on a paid order must stay cheap and
	// must not touch the network.
	if o.IsPaid() {
		result := &VerifyOrderPaymentResult{Verified: true, AlreadyPaid: true}
		if tx := o.TxHash(); tx != nil {
			result.TxHash = *tx
		}
		return result, nil
	}

	req := o.PaymentRequest()
	if req == nil || req.ExactPlancks == "" {
		return nil, apperrors.NewValidationError("order has no payment request")
	}

	merchant := req.MerchantAddress
	if merchant == "" {
		merchant = uc.cfg.MerchantAddress
	}

	// Verification always targets the plancks recorded at checkout, never
	// a recomputation from a fresh rate.
	res := uc.verifier.Verify(ctx, orderID, merchant, req.ExactPlancks)
	if !res.Matched {
		return &VerifyOrderPaymentResult{}, nil
	}

	// Commit guard: the store's conditional update re-checks the paid
	// state, closing the window between two near-simultaneous triggers
	// that both saw a fresh match.
	won, err := uc.orders.MarkPaid(ctx, orderID, o.CompletionStatus(), res.TxHash)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to mark order paid", err.Error())
	}
	if !won {
		uc.logger.Infow("order already completed by concurrent trigger",
			"order_id", orderID,
			"method", method.String(),
		)
		return &VerifyOrderPaymentResult{Verified: true, AlreadyPaid: true, TxHash: res.TxHash}, nil
	}

	uc.logger.Infow("order payment completed",
		"order_id", orderID,
		"method", method.String(),
		"remark", res.Remark,
		"tx_hash", res.TxHash,
	)

	if err := uc.orders.AppendNote(ctx, orderID, method.Note()); err != nil {
		uc.logger.Warnw("failed to append confirmation note", "order_id", orderID, "error", err)
	}

	uc.sendConfirmationEmails(ctx, o, res.TxHash)

	return &VerifyOrderPaymentResult{Verified: true, TxHash: res.TxHash}, nil
}

// sendConfirmationEmails delivers the admin and customer notifications at
// most once per order. The persisted flag is flipped with a conditional
// update first; only the caller that flips it sends, so concurrent
// triggers cannot double-notify.
func (uc *VerifyOrderPaymentUseCase) sendConfirmationEmails(ctx context.Context, o *order.Order, txHash string) {
	won, err := uc.orders.MarkEmailsSent(ctx, o.ID())
	if err != nil {
		uc.logger.Errorw("failed to flip emails-sent flag", "order_id", o.ID(), "error", err)
		return
	}
	if !won {
		return
	}

	displayAmount := ""
	if req := o.PaymentRequest(); req != nil {
		displayAmount = req.DisplayAmount
	}

	details := notify.PaymentDetails{
		OrderID:       o.ID(),
		BillingName:   o.BillingName(),
		BillingEmail:  o.BillingEmail(),
		DisplayAmount: displayAmount,
		TxHash:        txHash,
		ExplorerURL:   uc.cfg.ExplorerBaseURL() + "/extrinsic/" + txHash,
		Network:       uc.cfg.NetworkName(),
	}

	if err := uc.notifier.NotifyAdmin(ctx, details); err != nil {
		uc.logger.Errorw("failed to send admin confirmation", "order_id", o.ID(), "error", err)
	}
	if err := uc.notifier.NotifyCustomer(ctx, details); err != nil {
		uc.logger.Errorw("failed to send customer confirmation", "order_id", o.ID(), "error", err)
	}
}
