package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"lldgw/internal/application/gateway/amount"
	"lldgw/internal/application/gateway/link"
	"lldgw/internal/application/gateway/rate"
	"lldgw/internal/application/gateway/stock"
	"lldgw/internal/domain/order"
	"lldgw/internal/shared/config"
	apperrors "lldgw/internal/shared/errors"
	"lldgw/internal/shared/logger"
)

// TxRunner executes a function within a single database transaction. An
// error returned from the function rolls back every write made inside it.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreatePaymentRequestUseCase converts the order's fiat total into LLD,
// builds the gateway link, and parks the order on-hold awaiting payment.
// The exact planck amount computed here is the sole verification target
// for the lifetime of the request.
type CreatePaymentRequestUseCase struct {
	orders order.OrderRepository
	rates  *rate.Resolver
	stock  stock.Adjuster
	txMgr  TxRunner
	cfg    config.GatewayConfig
	logger logger.Interface
}

func NewCreatePaymentRequestUseCase(
	orders order.OrderRepository,
	rates *rate.Resolver,
	stockAdjuster stock.Adjuster,
	txMgr TxRunner,
	cfg config.GatewayConfig,
	log logger.Interface,
) *CreatePaymentRequestUseCase {
	return &CreatePaymentRequestUseCase{
		orders: orders,
		rates:  rates,
		stock:  stockAdjuster,
		txMgr:  txMgr,
		cfg:    cfg,
		logger: log,
	}
}

type CreatePaymentRequestResult struct {
	PaymentLink   string
	DisplayAmount string
	ExactPlancks  string
	ExplorerBase  string
}

func (uc *CreatePaymentRequestUseCase) Execute(ctx context.Context, orderID uint) (*CreatePaymentRequestResult, error) {
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
	if o.IsPaid() {
		return nil, apperrors.NewConflictError("order is already paid")
	}

	usdPerLLD := uc.rates.Resolve(ctx)
	display := amount.Display(o.FiatTotal(), usdPerLLD)
	plancks := amount.ExactPlancks(o.FiatTotal(), usdPerLLD)

	gatewayLink := link.Build(link.Params{
		GatewayBase:     uc.cfg.GatewayBaseURL(),
		OrderID:         orderID,
		DisplayAmount:   display,
		MerchantAddress: uc.cfg.MerchantAddress,
		CallbackURL:     appendOrderID(uc.cfg.SuccessURL, orderID),
		FailureURL:      uc.cfg.FailureURL,
		WebhookURL:      uc.cfg.WebhookURL,
	})

	firstRequest := o.PaymentRequest() == nil

	if err := o.AttachPaymentRequest(order.PaymentRequest{
		DisplayAmount:   display,
		ExactPlancks:    plancks,
		GatewayLink:     gatewayLink,
		MerchantAddress: uc.cfg.MerchantAddress,
		RateSnapshot:    usdPerLLD.String(),
	}); err != nil {
		return nil, apperrors.NewConflictError("cannot attach payment request", err.Error())
	}

	// Parking the order, the audit note, and the stock reservation commit
	// or roll back as one unit. A partially parked order would be
	// verifiable against plancks that were never shown to the customer.
	note := fmt.Sprintf("LLD payment link created: %s LLD (%s plancks)", display, plancks)
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orders.Update(txCtx, o); err != nil {
			return fmt.Errorf("failed to persist payment request: %w", err)
		}

		if err := uc.orders.AppendNote(txCtx, orderID, note); err != nil {
			return fmt.Errorf("failed to append order note: %w", err)
		}

		// Stock is reserved once, at the first checkout; a superseding
		// re-checkout must not decrement it again.
		if firstRequest {
			if err := uc.stock.ReduceStockLevels(txCtx, o); err != nil {
				return fmt.Errorf("failed to reduce stock levels: %w", err)
			}
		}

		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to park order awaiting payment", "order_id", orderID, "error", txErr)
		return nil, apperrors.NewInternalError("failed to persist payment request", txErr.Error())
	}

	uc.logger.Infow("payment request created",
		"order_id", orderID,
		"lld_amount", display,
		"plancks", plancks,
		"rate", usdPerLLD.String(),
	)

	return &CreatePaymentRequestResult{
		PaymentLink:   gatewayLink,
		DisplayAmount: display,
		ExactPlancks:  plancks,
		ExplorerBase:  uc.cfg.ExplorerBaseURL(),
	}, nil
}

// appendOrderID adds the order id to the storefront success URL so the
// payment page can redirect back to the right thank-you page.
func appendOrderID(rawURL string, orderID uint) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("order_id", strconv.FormatUint(uint64(orderID), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
