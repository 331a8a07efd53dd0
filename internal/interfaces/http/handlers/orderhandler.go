package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"lldgw/internal/application/gateway/usecases"
	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/logger"
	"lldgw/internal/shared/utils"
)

const qrCodeSize = 256

// OrderHandler serves the storefront-facing endpoints: creating payment
// requests at checkout, the payment-status poll, and the QR code image for
// the gateway link.
type OrderHandler struct {
	createUC *usecases.CreatePaymentRequestUseCase
	verifyUC *usecases.VerifyOrderPaymentUseCase
	orders   order.OrderRepository
	logger   logger.Interface
}

func NewOrderHandler(
	createUC *usecases.CreatePaymentRequestUseCase,
	verifyUC *usecases.VerifyOrderPaymentUseCase,
	orders order.OrderRepository,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		createUC: createUC,
		verifyUC: verifyUC,
		orders:   orders,
		logger:   logger,
	}
}

type PaymentRequestResponse struct {
	PaymentLink   string `json:"payment_link"`
	DisplayAmount string `json:"lld_amount"`
	ExactPlancks  string `json:"lld_plancks"`
	ExplorerBase  string `json:"explorer_base"`
}

// CreatePaymentRequest converts the order total to LLD at the current rate
// and parks the order awaiting payment. Re-invoking it supersedes the
// previous link and amounts.
func (h *OrderHandler) CreatePaymentRequest(c *gin.Context) {
	orderID, err := utils.GetUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), orderID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment request created", PaymentRequestResponse{
		PaymentLink:   result.PaymentLink,
		DisplayAmount: result.DisplayAmount,
		ExactPlancks:  result.ExactPlancks,
		ExplorerBase:  result.ExplorerBase,
	})
}

// GetPaymentRequest returns the live payment request for an order so the
// checkout page can re-render the link and amounts after a reload.
func (h *OrderHandler) GetPaymentRequest(c *gin.Context) {
	orderID, err := utils.GetUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		if err == order.ErrNotFound {
			utils.ErrorResponse(c, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Errorw("failed to load order", "order_id", orderID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load order")
		return
	}

	req := o.PaymentRequest()
	if req == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "order has no payment request")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", PaymentRequestResponse{
		PaymentLink:   req.GatewayLink,
		DisplayAmount: req.DisplayAmount,
		ExactPlancks:  req.ExactPlancks,
	})
}

// QRCode renders the gateway payment link as a PNG for wallet scanning.
func (h *OrderHandler) QRCode(c *gin.Context) {
	orderID, err := utils.GetUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		if err == order.ErrNotFound {
			utils.ErrorResponse(c, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Errorw("failed to load order", "order_id", orderID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load order")
		return
	}

	req := o.PaymentRequest()
	if req == nil || req.GatewayLink == "" {
		utils.ErrorResponse(c, http.StatusNotFound, "order has no payment request")
		return
	}

	png, err := qrcode.Encode(req.GatewayLink, qrcode.Medium, qrCodeSize)
	if err != nil {
		h.logger.Errorw("failed to encode QR code", "order_id", orderID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// CheckOrder is the poll endpoint the checkout page hits while the customer
// pays. The body is part of the storefront wire contract: a bare verified
// boolean.
func (h *OrderHandler) CheckOrder(c *gin.Context) {
	orderID, err := utils.GetUintParam(c, "order_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), orderID, vo.ConfirmationPolling)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": result.Verified})
}
