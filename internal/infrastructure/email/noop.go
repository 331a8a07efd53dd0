package email

import (
	"context"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/shared/logger"
)

// NoopNotifier logs instead of sending. Used when SMTP is not configured so
// payment completion never depends on a mail server being reachable.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier(log logger.Interface) *NoopNotifier {
	return &NoopNotifier{logger: log}
}

var _ notify.Sink = (*NoopNotifier)(nil)

func (n *NoopNotifier) NotifyAdmin(ctx context.Context, details notify.PaymentDetails) error {
	n.logger.Infow("email disabled, skipping admin confirmation", "order_id", details.OrderID)
	return nil
}

func (n *NoopNotifier) NotifyCustomer(ctx context.Context, details notify.PaymentDetails) error {
	n.logger.Infow("email disabled, skipping customer confirmation", "order_id", details.OrderID)
	return nil
}
