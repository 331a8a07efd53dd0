package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lldgw/internal/application/gateway/notify"
	"lldgw/internal/application/gateway/rate"
	"lldgw/internal/application/gateway/usecases"
	"lldgw/internal/application/gateway/verification"
	"lldgw/internal/infrastructure/auth"
	"lldgw/internal/infrastructure/chainindex"
	"lldgw/internal/infrastructure/config"
	"lldgw/internal/infrastructure/email"
	"lldgw/internal/infrastructure/exchangerate"
	"lldgw/internal/infrastructure/repository"
	"lldgw/internal/infrastructure/webhookauth"
	"lldgw/internal/interfaces/http/handlers"
	"lldgw/internal/interfaces/http/middleware"
	"lldgw/internal/interfaces/http/routes"
	sharedDB "lldgw/internal/shared/db"
	"lldgw/internal/shared/logger"
	"lldgw/internal/shared/utils"
)

// Router wires the HTTP surface together.
type Router struct {
	engine         *gin.Engine
	orderHandler   *handlers.OrderHandler
	webhookHandler *handlers.WebhookHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	verifyUC       *usecases.VerifyOrderPaymentUseCase
	logger         logger.Interface
}

// NewRouter builds the full dependency graph: repositories, the rate
// resolver, the verification engine, use cases, and handlers.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db, log)
	txMgr := sharedDB.NewTransactionManager(db)

	oracle := exchangerate.NewCoinGeckoOracle(log.Named("coingecko"))
	rates := rate.NewResolver(cfg.Gateway.LLDRate, cfg.Gateway.FallbackRate, oracle, log.Named("rates"))

	indexClient := chainindex.NewClient(cfg.Gateway.APIBaseURL(), log.Named("chainindex"))
	engineVerifier := verification.NewEngine(indexClient, log.Named("verification"))

	webhookVerifier, err := webhookauth.NewVerifier(cfg.Gateway.PublicKey, cfg.Gateway.DebugMode, log.Named("webhookauth"))
	if err != nil {
		return nil, fmt.Errorf("failed to init webhook verifier: %w", err)
	}

	var notifier notify.Sink
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(cfg.Email, log.Named("email"))
	} else {
		notifier = email.NewNoopNotifier(log.Named("email"))
	}

	createUC := usecases.NewCreatePaymentRequestUseCase(orderRepo, rates, stockRepo, txMgr, cfg.Gateway, log.Named("checkout"))
	verifyUC := usecases.NewVerifyOrderPaymentUseCase(orderRepo, engineVerifier, notifier, cfg.Gateway, log.Named("verify"))

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log.Named("auth"))

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute, time.Minute)
	}

	return &Router{
		engine:         engine,
		orderHandler:   handlers.NewOrderHandler(createUC, verifyUC, orderRepo, log.Named("orders")),
		webhookHandler: handlers.NewWebhookHandler(webhookVerifier, verifyUC, log.Named("webhook")),
		adminHandler:   handlers.NewAdminHandler(verifyUC, log.Named("admin")),
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		verifyUC:       verifyUC,
		logger:         log,
	}, nil
}

// VerifyUseCase exposes the verification pipeline so the background order
// monitor can share it with the HTTP surface.
func (r *Router) VerifyUseCase() *usecases.VerifyOrderPaymentUseCase {
	return r.verifyUC
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger.Named("http")))
	r.engine.Use(middleware.Recovery())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "ok", nil)
	})

	routes.SetupGatewayRoutes(r.engine, &routes.GatewayRouteConfig{
		OrderHandler:   r.orderHandler,
		WebhookHandler: r.webhookHandler,
		AdminHandler:   r.adminHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
