package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/biztime"
)

// PaymentMethodLLD is the payment method identifier this gateway acts on.
// Orders paid by any other method are ignored.
const PaymentMethodLLD = "lld_gateway"

// PaymentRequest is the live payment request attached to an order.
// ExactPlancks is the authoritative verification amount; DisplayAmount is
// cosmetic and must never be parsed back into plancks.
type PaymentRequest struct {
	DisplayAmount   string
	ExactPlancks    string
	GatewayLink     string
	MerchantAddress string
	RateSnapshot    string
	CreatedAt       time.Time
}

// OrderItem is a purchased line item, used for stock reduction.
type OrderItem struct {
	ProductID uint
	Quantity  int
}

type Order struct {
	id               uint
	billingName      string
	billingEmail     string
	currency         string
	fiatTotal        decimal.Decimal
	paymentMethod    string
	status           vo.OrderStatus
	requiresShipping bool
	items            []OrderItem

	paymentRequest *PaymentRequest

	txHash     *string
	paidAt     *time.Time
	emailsSent bool

	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewOrder(billingName, billingEmail, currency string, fiatTotal decimal.Decimal, paymentMethod string, requiresShipping bool, items []OrderItem) (*Order, error) {
	if billingEmail == "" {
		return nil, fmt.Errorf("billing email is required")
	}
	if !fiatTotal.IsPositive() {
		return nil, fmt.Errorf("fiat total must be positive")
	}
	if paymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	now := biztime.NowUTC()
	return &Order{
		billingName:      billingName,
		billingEmail:     billingEmail,
		currency:         currency,
		fiatTotal:        fiatTotal,
		paymentMethod:    paymentMethod,
		status:           vo.OrderStatusPending,
		requiresShipping: requiresShipping,
		items:            items,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// AttachPaymentRequest records a new payment request and moves the order to
// on-hold. A re-checkout supersedes the previous link and amounts; once the
// order is paid the request is terminal and cannot be replaced.
func (o *Order) AttachPaymentRequest(req PaymentRequest) error {
	if o.status.IsPaid() {
		return fmt.Errorf("cannot attach payment request to paid order")
	}
	if o.status == vo.OrderStatusCancelled {
		return fmt.Errorf("cannot attach payment request to cancelled order")
	}
	if req.ExactPlancks == "" {
		return fmt.Errorf("exact planck amount is required")
	}

	req.CreatedAt = biztime.NowUTC()
	o.paymentRequest = &req
	o.status = vo.OrderStatusOnHold
	o.updatedAt = req.CreatedAt
	o.version++

	return nil
}

// CompletePayment marks the order paid. Calling it on an already-paid order
// is a no-op; any other non-on-hold state is an error. The paid state never
// moves backward.
func (o *Order) CompletePayment(txHash string) error {
	if o.status.IsPaid() {
		return nil
	}
	if !o.status.AwaitingPayment() {
		return fmt.Errorf("cannot complete payment with status %s", o.status)
	}

	now := biztime.NowUTC()
	o.status = o.CompletionStatus()
	o.txHash = &txHash
	o.paidAt = &now
	o.updatedAt = now
	o.version++

	return nil
}

// CompletionStatus is the paid state this order lands in: processing when it
// still needs fulfilment, completed otherwise.
func (o *Order) CompletionStatus() vo.OrderStatus {
	if o.requiresShipping {
		return vo.OrderStatusProcessing
	}
	return vo.OrderStatusCompleted
}

// MarkEmailsSent flags confirmation emails as sent. Reports whether this
// call flipped the flag.
func (o *Order) MarkEmailsSent() bool {
	if o.emailsSent {
		return false
	}
	o.emailsSent = true
	o.updatedAt = biztime.NowUTC()
	o.version++
	return true
}

func (o *Order) ID() uint {
	return o.id
}

func (o *Order) BillingName() string {
	return o.billingName
}

func (o *Order) BillingEmail() string {
	return o.billingEmail
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) FiatTotal() decimal.Decimal {
	return o.fiatTotal
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) Status() vo.OrderStatus {
	return o.status
}

func (o *Order) RequiresShipping() bool {
	return o.requiresShipping
}

func (o *Order) Items() []OrderItem {
	return o.items
}

func (o *Order) PaymentRequest() *PaymentRequest {
	return o.paymentRequest
}

func (o *Order) IsPaid() bool {
	return o.status.IsPaid()
}

func (o *Order) TxHash() *string {
	return o.txHash
}

func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

func (o *Order) EmailsSent() bool {
	return o.emailsSent
}

func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// SetID sets the order ID after persistence (used by repository after Create)
func (o *Order) SetID(id uint) {
	o.id = id
}

// ReconstructParams carries persisted state back into an Order.
type ReconstructParams struct {
	ID               uint
	BillingName      string
	BillingEmail     string
	Currency         string
	FiatTotal        decimal.Decimal
	PaymentMethod    string
	Status           vo.OrderStatus
	RequiresShipping bool
	Items            []OrderItem
	PaymentRequest   *PaymentRequest
	TxHash           *string
	PaidAt           *time.Time
	EmailsSent       bool
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:               p.ID,
		billingName:      p.BillingName,
		billingEmail:     p.BillingEmail,
		currency:         p.Currency,
		fiatTotal:        p.FiatTotal,
		paymentMethod:    p.PaymentMethod,
		status:           p.Status,
		requiresShipping: p.RequiresShipping,
		items:            p.Items,
		paymentRequest:   p.PaymentRequest,
		txHash:           p.TxHash,
		paidAt:           p.PaidAt,
		emailsSent:       p.EmailsSent,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}
