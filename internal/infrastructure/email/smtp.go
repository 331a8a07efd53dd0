package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/shared/config"
	"lldgw/internal/shared/logger"
)

// SMTPNotifier delivers payment confirmation emails through SMTP. Delivery
// failures are reported to the caller but never roll back a completed
// payment.
type SMTPNotifier struct {
	config config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(cfg config.EmailConfig, log logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPNotifier{
		config: cfg,
		dialer: dialer,
		logger: log,
	}
}

var _ notify.Sink = (*SMTPNotifier)(nil)

// NotifyAdmin sends the merchant-facing confirmation. Plain text only; the
// admin reads it in a terminal as often as a mail client.
func (s *SMTPNotifier) NotifyAdmin(ctx context.Context, details notify.PaymentDetails) error {
	subject := fmt.Sprintf("[%s] LLD Payment Confirmed - Order #%d", details.Network, details.OrderID)

	plainBody := fmt.Sprintf(`LLD payment confirmed.

Order:       #%d
Customer:    %s <%s>
Amount:      %s LLD
Transaction: %s
Explorer:    %s
Network:     %s
`, details.OrderID, details.BillingName, details.BillingEmail,
		details.DisplayAmount, details.TxHash, details.ExplorerURL, details.Network)

	return s.sendEmail(s.config.AdminAddress, subject, "", plainBody)
}

// NotifyCustomer sends the buyer-facing confirmation with an explorer link.
func (s *SMTPNotifier) NotifyCustomer(ctx context.Context, details notify.PaymentDetails) error {
	if details.BillingEmail == "" {
		s.logger.Warnw("order has no billing email, skipping customer confirmation",
			"order_id", details.OrderID,
		)
		return nil
	}

	subject := fmt.Sprintf("Your LLD Payment for Order #%d is Confirmed!", details.OrderID)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment Confirmed</h2>
			<p>Hi %s,</p>
			<p>We have received your LLD payment of <strong>%s LLD</strong> for order #%d.</p>
			<p>Transaction: <a href="%s">%s</a></p>
			<p>Thank you for your purchase!</p>
		</body>
		</html>
	`, details.BillingName, details.DisplayAmount, details.OrderID,
		details.ExplorerURL, details.TxHash)

	plainBody := fmt.Sprintf(`Hi %s,

We have received your LLD payment of %s LLD for order #%d.

Transaction: %s
%s

Thank you for your purchase!
`, details.BillingName, details.DisplayAmount, details.OrderID,
		details.TxHash, details.ExplorerURL)

	return s.sendEmail(details.BillingEmail, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
