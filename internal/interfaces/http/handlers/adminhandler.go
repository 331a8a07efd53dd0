package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lldgw/internal/application/gateway/usecases"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/logger"
	"lldgw/internal/shared/utils"
)

// AdminHandler serves the operator surface.
type AdminHandler struct {
	verifyUC *usecases.VerifyOrderPaymentUseCase
	logger   logger.Interface
}

func NewAdminHandler(verifyUC *usecases.VerifyOrderPaymentUseCase, logger logger.Interface) *AdminHandler {
	return &AdminHandler{
		verifyUC: verifyUC,
		logger:   logger,
	}
}

// TriggerVerify runs an on-demand verification for a stuck order. Manual
// triggers go through the exact same pipeline as webhook and polling.
func (h *AdminHandler) TriggerVerify(c *gin.Context) {
	orderID, err := utils.GetUintParam(c, "order_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	operator, _ := c.Get("operator")
	h.logger.Infow("manual verification triggered", "order_id", orderID, "operator", operator)

	result, err := h.verifyUC.Execute(c.Request.Context(), orderID, vo.ConfirmationManual)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "No transaction found"
	if result.Verified {
		message = "Found (remark match)"
	}

	c.JSON(http.StatusOK, gin.H{
		"verified": result.Verified,
		"message":  message,
	})
}
