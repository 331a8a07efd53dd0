package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/application/gateway/rate"
	"lldgw/internal/application/gateway/usecases"
	"lldgw/internal/application/gateway/verification"
	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/infrastructure/auth"
	"lldgw/internal/infrastructure/webhookauth"
	"lldgw/internal/interfaces/http/handlers"
	"lldgw/internal/interfaces/http/middleware"
	"lldgw/internal/shared/biztime"
	"lldgw/internal/shared/config"
	"lldgw/internal/shared/logger"
)

// --- fakes ---

type routeOrderRepo struct {
	mu     sync.Mutex
	states map[uint]order.ReconstructParams
}

func newRouteOrderRepo() *routeOrderRepo {
	return &routeOrderRepo{states: make(map[uint]order.ReconstructParams)}
}

func (r *routeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }
func (r *routeOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }

func (r *routeOrderRepo) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return order.Reconstruct(p), nil
}

func (r *routeOrderRepo) MarkPaid(ctx context.Context, id uint, status vo.OrderStatus, txHash string) (bool, error) {
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

func (r *routeOrderRepo) MarkEmailsSent(ctx context.Context, id uint) (bool, error) {
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

func (r *routeOrderRepo) IsPaid(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.states[id]
	if !ok {
		return false, order.ErrNotFound
	}
	return p.Status.IsPaid(), nil
}

func (r *routeOrderRepo) AppendNote(ctx context.Context, id uint, note string) error { return nil }

type routeVerifier struct {
	matched bool
}

func (v routeVerifier) Verify(ctx context.Context, orderID uint, merchantAddress, expectedPlancks string) verification.Result {
	return verification.Result{Matched: v.matched, TxHash: "0xabc"}
}

type routeNotifier struct{}

func (routeNotifier) NotifyAdmin(ctx context.Context, d notify.PaymentDetails) error    { return nil }
func (routeNotifier) NotifyCustomer(ctx context.Context, d notify.PaymentDetails) error { return nil }

type routeStock struct{}

func (routeStock) ReduceStockLevels(ctx context.Context, o *order.Order) error { return nil }

type routeTxRunner struct{}

func (routeTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type routeOracle struct{}

func (routeOracle) USDPerLLD(ctx context.Context) (decimal.Decimal, error) {
	return decimal.NewFromFloat(0.5), nil
}

// --- helpers ---

func awaitingOrder(id uint) order.ReconstructParams {
	now := biztime.NowUTC()
	return order.ReconstructParams{
		ID:            id,
		BillingEmail:  "ada@example.com",
		Currency:      "USD",
		FiatTotal:     decimal.NewFromInt(50),
		PaymentMethod: order.PaymentMethodLLD,
		Status:        vo.OrderStatusOnHold,
		PaymentRequest: &order.PaymentRequest{
			ExactPlancks:    "100000000000000",
			MerchantAddress: "merchant",
			CreatedAt:       now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestEngine(t *testing.T, repo *routeOrderRepo, matched bool, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GatewayConfig{
		Network:         config.NetworkMainnet,
		MerchantAddress: "merchant",
	}
	nop := logger.NewNop()

	rates := rate.NewResolver("", "1.0", routeOracle{}, nop)
	createUC := usecases.NewCreatePaymentRequestUseCase(repo, rates, routeStock{}, routeTxRunner{}, cfg, nop)
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(repo, routeVerifier{matched: matched}, routeNotifier{}, cfg, nop)

	authenticator, err := webhookauth.NewVerifier("", true, nop)
	require.NoError(t, err)

	engine := gin.New()
	SetupGatewayRoutes(engine, &GatewayRouteConfig{
		OrderHandler:   handlers.NewOrderHandler(createUC, verifyUC, repo, nop),
		WebhookHandler: handlers.NewWebhookHandler(authenticator, verifyUC, nop),
		AdminHandler:   handlers.NewAdminHandler(verifyUC, nop),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService, nop),
	})
	return engine
}

func do(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestCheckOrderPath(t *testing.T) {
	repo := newRouteOrderRepo()
	repo.states[7] = awaitingOrder(7)
	engine := newTestEngine(t, repo, false, auth.NewJWTService("secret", 60))

	w := do(engine, http.MethodGet, "/lld-gateway/v1/check-order/7", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"verified":false}`, w.Body.String())
}

func TestTriggerVerifyPathRequiresOperator(t *testing.T) {
	repo := newRouteOrderRepo()
	repo.states[7] = awaitingOrder(7)
	jwtService := auth.NewJWTService("secret", 60)
	engine := newTestEngine(t, repo, true, jwtService)

	w := do(engine, http.MethodPost, "/lld-gateway/v1/trigger-verify/7", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtService.Generate("ops", auth.RoleOperator)
	require.NoError(t, err)

	w = do(engine, http.MethodPost, "/lld-gateway/v1/trigger-verify/7", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"verified":true,"message":"Found (remark match)"}`, w.Body.String())
}

func TestLegacyPathsNotRegistered(t *testing.T) {
	repo := newRouteOrderRepo()
	repo.states[7] = awaitingOrder(7)
	engine := newTestEngine(t, repo, false, auth.NewJWTService("secret", 60))

	w := do(engine, http.MethodGet, "/lld-gateway/v1/orders/7/check", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(engine, http.MethodPost, "/lld-gateway/v1/admin/orders/7/verify", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
