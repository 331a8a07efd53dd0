package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lldgw/internal/application/gateway/usecases"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/infrastructure/webhookauth"
	apperrors "lldgw/internal/shared/errors"
	"lldgw/internal/shared/logger"
)

// maxWebhookBodySize caps the webhook payload (1MB).
const maxWebhookBodySize = 1 << 20

// WebhookHandler receives payment notifications pushed by the wallet
// gateway. The response bodies are part of the gateway's wire contract and
// must stay exactly as they are.
type WebhookHandler struct {
	authenticator *webhookauth.Verifier
	verifyUC      *usecases.VerifyOrderPaymentUseCase
	logger        logger.Interface
}

func NewWebhookHandler(
	authenticator *webhookauth.Verifier,
	verifyUC *usecases.VerifyOrderPaymentUseCase,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		authenticator: authenticator,
		verifyUC:      verifyUC,
		logger:        logger,
	}
}

type webhookPayload struct {
	OrderID uint `json:"orderId"`
}

// HandlePaymentNotification authenticates the delivery, then runs the same
// verification pipeline as polling. A webhook is a hint, never a proof: the
// order is only completed if the chain index confirms the payment.
func (h *WebhookHandler) HandlePaymentNotification(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_verified"})
		return
	}

	// The signature covers the raw body bytes, so it is checked before any
	// parsing.
	signature := c.GetHeader("signature")
	if signature == "" {
		signature = c.GetHeader("x-signature")
	}
	if err := h.authenticator.Authenticate(body, signature); err != nil {
		h.logger.Warnw("webhook signature rejected", "error", err, "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad_sig"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.OrderID == 0 {
		h.logger.Warnw("malformed webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_verified"})
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), payload.OrderID, vo.ConfirmationWebhook)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not_verified"})
			return
		}
		h.logger.Errorw("webhook verification failed", "order_id", payload.OrderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gateway_not_loaded"})
		return
	}

	if !result.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_verified"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
