package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/application/gateway/usecases"
	"lldgw/internal/application/gateway/verification"
	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/biztime"
	"lldgw/internal/shared/config"
	"lldgw/internal/shared/logger"
)

type sweepRepo struct {
	mu     sync.Mutex
	states map[uint]order.ReconstructParams
	listed []time.Time
}

func newSweepRepo() *sweepRepo {
	return &sweepRepo{states: make(map[uint]order.ReconstructParams)}
}

func (r *sweepRepo) Create(ctx context.Context, o *order.Order) error { return nil }
func (r *sweepRepo) Update(ctx context.Context, o *order.Order) error { return nil }

func (r *sweepRepo) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return order.Reconstruct(p), nil
}

func (r *sweepRepo) MarkPaid(ctx context.Context, id uint, status vo.OrderStatus, txHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok || p.Status != vo.OrderStatusOnHold {
		return false, nil
	}
	p.Status = status
	p.TxHash = &txHash
	r.states[id] = p
	return true, nil
}

func (r *sweepRepo) MarkEmailsSent(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok || p.EmailsSent {
		return false, nil
	}
	p.EmailsSent = true
	r.states[id] = p
	return true, nil
}

func (r *sweepRepo) IsPaid(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok {
		return false, order.ErrNotFound
	}
	return p.Status.IsPaid(), nil
}

func (r *sweepRepo) AppendNote(ctx context.Context, id uint, note string) error { return nil }

func (r *sweepRepo) ListAwaitingPayment(ctx context.Context, olderThan time.Time, limit int) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed = append(r.listed, olderThan)

	var ids []uint
	for id, p := range r.states {
		if p.Status != vo.OrderStatusOnHold || p.PaymentRequest == nil {
			continue
		}
		if p.PaymentRequest.CreatedAt.Before(olderThan) {
			ids = append(ids, id)
		}
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

type sweepVerifier struct {
	mu    sync.Mutex
	calls int
}

func (s *sweepVerifier) Verify(ctx context.Context, orderID uint, merchantAddress, expectedPlancks string) verification.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return verification.Result{Matched: true, TxHash: "0xsweep"}
}

type sweepNotifier struct{}

func (sweepNotifier) NotifyAdmin(ctx context.Context, d notify.PaymentDetails) error    { return nil }
func (sweepNotifier) NotifyCustomer(ctx context.Context, d notify.PaymentDetails) error { return nil }

func staleOnHold(id uint, age time.Duration) order.ReconstructParams {
	created := biztime.NowUTC().Add(-age)
	return order.ReconstructParams{
		ID:            id,
		BillingEmail:  "ada@example.com",
		Currency:      "USD",
		FiatTotal:     decimal.NewFromInt(10),
		PaymentMethod: order.PaymentMethodLLD,
		Status:        vo.OrderStatusOnHold,
		PaymentRequest: &order.PaymentRequest{
			ExactPlancks:    "1000",
			MerchantAddress: "merchant",
			CreatedAt:       created,
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSweepCompletesStaleOrders(t *testing.T) {
	repo := newSweepRepo()
	repo.states[1] = staleOnHold(1, time.Hour)
	repo.states[2] = staleOnHold(2, time.Hour)

	verifier := &sweepVerifier{}
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(repo, verifier, sweepNotifier{}, config.GatewayConfig{
		MerchantAddress: "merchant",
	}, logger.NewNop())

	s := NewOrderMonitorScheduler(repo, verifyUC, logger.NewNop())
	s.sweep()

	assert.Equal(t, 2, verifier.calls)
	paid1, err := repo.IsPaid(context.Background(), 1)
	require.NoError(t, err)
	paid2, err := repo.IsPaid(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, paid1)
	assert.True(t, paid2)
}

func TestSweepSkipsFreshOrders(t *testing.T) {
	repo := newSweepRepo()
	repo.states[1] = staleOnHold(1, time.Minute)

	verifier := &sweepVerifier{}
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(repo, verifier, sweepNotifier{}, config.GatewayConfig{}, logger.NewNop())

	s := NewOrderMonitorScheduler(repo, verifyUC, logger.NewNop())
	s.sweep()

	assert.Zero(t, verifier.calls, "orders younger than the cutoff stay with the checkout poll")
}

func TestSweepIdempotentAcrossRuns(t *testing.T) {
	repo := newSweepRepo()
	repo.states[1] = staleOnHold(1, time.Hour)

	verifier := &sweepVerifier{}
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(repo, verifier, sweepNotifier{}, config.GatewayConfig{}, logger.NewNop())

	s := NewOrderMonitorScheduler(repo, verifyUC, logger.NewNop())
	s.sweep()
	s.sweep()

	// The second sweep finds nothing on hold, so the index is not probed again.
	assert.Equal(t, 1, verifier.calls)
}

func TestStartStop(t *testing.T) {
	repo := newSweepRepo()
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(repo, &sweepVerifier{}, sweepNotifier{}, config.GatewayConfig{}, logger.NewNop())

	s := NewOrderMonitorScheduler(repo, verifyUC, logger.NewNop())
	s.Start()
	s.Start() // second start is a no-op
	s.Stop()
}
