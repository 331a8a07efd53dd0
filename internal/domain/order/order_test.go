package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "lldgw/internal/domain/order/valueobjects"
)

// --- helpers ---

func validOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("Ada Lovelace", "ada@example.com", "USD",
		decimal.NewFromInt(100), PaymentMethodLLD, false, nil)
	require.NoError(t, err)
	return o
}

func validRequest() PaymentRequest {
	return PaymentRequest{
		DisplayAmount:   "900.900900900901",
		ExactPlancks:    "900900900900901",
		GatewayLink:     "https://blockchain.liberland.org/home/wallet/gateway/1",
		MerchantAddress: "merchant-addr",
		RateSnapshot:    "0.111",
	}
}

// --- constructor ---

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		total   decimal.Decimal
		method  string
		wantErr bool
	}{
		{"valid", "a@b.c", decimal.NewFromInt(10), PaymentMethodLLD, false},
		{"missing email", "", decimal.NewFromInt(10), PaymentMethodLLD, true},
		{"zero total", "a@b.c", decimal.Zero, PaymentMethodLLD, true},
		{"negative total", "a@b.c", decimal.NewFromInt(-5), PaymentMethodLLD, true},
		{"missing method", "a@b.c", decimal.NewFromInt(10), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder("name", tt.email, "USD", tt.total, tt.method, false, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.OrderStatusPending, o.Status())
		})
	}
}

// --- payment request lifecycle ---

func TestAttachPaymentRequestMovesToOnHold(t *testing.T) {
	o := validOrder(t)

	err := o.AttachPaymentRequest(validRequest())
	require.NoError(t, err)

	assert.Equal(t, vo.OrderStatusOnHold, o.Status())
	require.NotNil(t, o.PaymentRequest())
	assert.False(t, o.PaymentRequest().CreatedAt.IsZero())
}

func TestAttachPaymentRequestSupersedes(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))

	second := validRequest()
	second.ExactPlancks = "123"
	require.NoError(t, o.AttachPaymentRequest(second))

	assert.Equal(t, "123", o.PaymentRequest().ExactPlancks)
	assert.Equal(t, vo.OrderStatusOnHold, o.Status())
}

func TestAttachPaymentRequestRejectsPaidOrder(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))
	require.NoError(t, o.CompletePayment("0x1"))

	err := o.AttachPaymentRequest(validRequest())
	assert.Error(t, err)
}

func TestAttachPaymentRequestRequiresPlancks(t *testing.T) {
	o := validOrder(t)
	req := validRequest()
	req.ExactPlancks = ""

	assert.Error(t, o.AttachPaymentRequest(req))
}

// --- completion ---

func TestCompletePayment(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))

	err := o.CompletePayment("0xfeed")
	require.NoError(t, err)

	assert.True(t, o.IsPaid())
	assert.Equal(t, vo.OrderStatusCompleted, o.Status())
	require.NotNil(t, o.TxHash())
	assert.Equal(t, "0xfeed", *o.TxHash())
	require.NotNil(t, o.PaidAt())
}

func TestCompletePaymentShippingGoesToProcessing(t *testing.T) {
	o, err := NewOrder("Ada", "ada@example.com", "USD",
		decimal.NewFromInt(50), PaymentMethodLLD, true, nil)
	require.NoError(t, err)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))

	require.NoError(t, o.CompletePayment("0x1"))

	assert.Equal(t, vo.OrderStatusProcessing, o.Status())
}

func TestCompletePaymentIdempotent(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))
	require.NoError(t, o.CompletePayment("0xfirst"))

	// Repeated completion is a no-op; the recorded hash never changes.
	require.NoError(t, o.CompletePayment("0xsecond"))
	assert.Equal(t, "0xfirst", *o.TxHash())
}

func TestCompletePaymentRequiresOnHold(t *testing.T) {
	o := validOrder(t)

	err := o.CompletePayment("0x1")
	assert.Error(t, err, "pending order has no payment request to verify against")
}

// --- email flag ---

func TestMarkEmailsSentFlipsOnce(t *testing.T) {
	o := validOrder(t)

	assert.True(t, o.MarkEmailsSent())
	assert.False(t, o.MarkEmailsSent())
	assert.True(t, o.EmailsSent())
}

// --- reconstruction ---

func TestReconstructRoundTrip(t *testing.T) {
	o := validOrder(t)
	require.NoError(t, o.AttachPaymentRequest(validRequest()))
	o.SetID(42)

	rebuilt := Reconstruct(ReconstructParams{
		ID:             o.ID(),
		BillingName:    o.BillingName(),
		BillingEmail:   o.BillingEmail(),
		Currency:       o.Currency(),
		FiatTotal:      o.FiatTotal(),
		PaymentMethod:  o.PaymentMethod(),
		Status:         o.Status(),
		PaymentRequest: o.PaymentRequest(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	})

	assert.Equal(t, uint(42), rebuilt.ID())
	assert.Equal(t, o.Status(), rebuilt.Status())
	assert.Equal(t, o.PaymentRequest().ExactPlancks, rebuilt.PaymentRequest().ExactPlancks)
	assert.True(t, o.FiatTotal().Equal(rebuilt.FiatTotal()))
}
