package routes

import (
	"github.com/gin-gonic/gin"

	"lldgw/internal/interfaces/http/handlers"
	"lldgw/internal/interfaces/http/middleware"
)

// GatewayRouteConfig holds dependencies for the gateway routes.
type GatewayRouteConfig struct {
	OrderHandler   *handlers.OrderHandler
	WebhookHandler *handlers.WebhookHandler
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupGatewayRoutes configures the payment gateway routes.
func SetupGatewayRoutes(engine *gin.Engine, cfg *GatewayRouteConfig) {
	v1 := engine.Group("/lld-gateway/v1")
	{
		// Webhook deliveries authenticate with the body signature, not a
		// bearer token.
		v1.POST("/webhook", cfg.WebhookHandler.HandlePaymentNotification)

		// The poll and manual-verify paths are part of the storefront wire
		// contract and must not be renamed.
		poll := v1.Group("")
		if cfg.RateLimiter != nil {
			poll.Use(cfg.RateLimiter.Limit())
		}
		poll.GET("/check-order/:order_id", cfg.OrderHandler.CheckOrder)

		verify := v1.Group("")
		verify.Use(cfg.AuthMiddleware.RequireOperator())
		verify.POST("/trigger-verify/:order_id", cfg.AdminHandler.TriggerVerify)

		orders := v1.Group("/orders")
		{
			orders.POST("/:id/payment-request", cfg.OrderHandler.CreatePaymentRequest)
			orders.GET("/:id/payment-request", cfg.OrderHandler.GetPaymentRequest)
			orders.GET("/:id/qr", cfg.OrderHandler.QRCode)
		}
	}
}
