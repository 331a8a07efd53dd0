package valueobjects

// ConfirmationMethod records which trigger surface confirmed a payment.
type ConfirmationMethod string

const (
	ConfirmationWebhook ConfirmationMethod = "webhook"
	ConfirmationPolling ConfirmationMethod = "polling"
	ConfirmationManual  ConfirmationMethod = "manual"
)

func (m ConfirmationMethod) String() string {
	return string(m)
}

// Note returns the audit note appended to the order for this method.
func (m ConfirmationMethod) Note() string {
	switch m {
	case ConfirmationWebhook:
		return "LLD confirmed via webhook (exact paid plancks + remark match)."
	case ConfirmationPolling:
		return "LLD confirmed via polling (exact paid plancks + remark match)."
	case ConfirmationManual:
		return "LLD confirmed manually (exact paid plancks + remark match)."
	default:
		return "LLD confirmed (exact paid plancks + remark match)."
	}
}
