// Package link builds the payment-request URI the payer's wallet opens.
package link

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params holds the dynamic parts of a gateway link. All values are
// percent-encoded; a malformed result is a caller bug, not a runtime
// condition.
type Params struct {
	GatewayBase     string
	OrderID         uint
	DisplayAmount   string // human LLD amount, never plancks
	MerchantAddress string
	CallbackURL     string
	FailureURL      string
	WebhookURL      string
}

// Build constructs the payment URI:
//
//	<base>/<order_id>?price=...&toId=...&callback=...&remark=...&failure=...&hook=...
//
// price carries the display amount so the wallet shows a sane number; the
// verification path uses the exact planck amount separately.
func Build(p Params) string {
	q := url.Values{}
	q.Set("price", p.DisplayAmount)
	q.Set("toId", p.MerchantAddress)
	q.Set("callback", p.CallbackURL)
	q.Set("remark", fmt.Sprintf("Order #%d", p.OrderID))
	q.Set("failure", p.FailureURL)
	q.Set("hook", p.WebhookURL)

	base := strings.TrimSuffix(p.GatewayBase, "/")
	return base + "/" + strconv.FormatUint(uint64(p.OrderID), 10) + "?" + q.Encode()
}
