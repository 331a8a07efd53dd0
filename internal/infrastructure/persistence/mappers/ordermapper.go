package mappers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:               o.ID(),
		BillingName:      o.BillingName(),
		BillingEmail:     o.BillingEmail(),
		Currency:         o.Currency(),
		FiatTotal:        o.FiatTotal().String(),
		PaymentMethod:    o.PaymentMethod(),
		Status:           o.Status().String(),
		RequiresShipping: o.RequiresShipping(),
		TxHash:           o.TxHash(),
		PaidAt:           o.PaidAt(),
		EmailsSent:       o.EmailsSent(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	if req := o.PaymentRequest(); req != nil {
		display := req.DisplayAmount
		plancks := req.ExactPlancks
		link := req.GatewayLink
		merchant := req.MerchantAddress
		rate := req.RateSnapshot
		requestedAt := req.CreatedAt

		model.LLDDisplayAmount = &display
		model.LLDExactPlancks = &plancks
		model.LLDGatewayLink = &link
		model.LLDMerchantAddress = &merchant
		model.LLDRateSnapshot = &rate
		model.LLDRequestedAt = &requestedAt
	}

	for _, item := range o.Items() {
		model.Items = append(model.Items, models.OrderItemModel{
			OrderID:   o.ID(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return model
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	fiatTotal, err := decimal.NewFromString(model.FiatTotal)
	if err != nil {
		return nil, fmt.Errorf("invalid fiat total: %w", err)
	}

	status := vo.OrderStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", model.Status)
	}

	var req *order.PaymentRequest
	if model.LLDExactPlancks != nil && *model.LLDExactPlancks != "" {
		req = &order.PaymentRequest{
			ExactPlancks: *model.LLDExactPlancks,
		}
		if model.LLDDisplayAmount != nil {
			req.DisplayAmount = *model.LLDDisplayAmount
		}
		if model.LLDGatewayLink != nil {
			req.GatewayLink = *model.LLDGatewayLink
		}
		if model.LLDMerchantAddress != nil {
			req.MerchantAddress = *model.LLDMerchantAddress
		}
		if model.LLDRateSnapshot != nil {
			req.RateSnapshot = *model.LLDRateSnapshot
		}
		if model.LLDRequestedAt != nil {
			req.CreatedAt = *model.LLDRequestedAt
		}
	}

	items := make([]order.OrderItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, order.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:               model.ID,
		BillingName:      model.BillingName,
		BillingEmail:     model.BillingEmail,
		Currency:         model.Currency,
		FiatTotal:        fiatTotal,
		PaymentMethod:    model.PaymentMethod,
		Status:           status,
		RequiresShipping: model.RequiresShipping,
		Items:            items,
		PaymentRequest:   req,
		TxHash:           model.TxHash,
		PaidAt:           model.PaidAt,
		EmailsSent:       model.EmailsSent,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}), nil
}
