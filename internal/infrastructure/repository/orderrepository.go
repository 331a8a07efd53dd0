package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lldgw/internal/domain/order"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/infrastructure/persistence/mappers"
	"lldgw/internal/infrastructure/persistence/models"
	"lldgw/internal/shared/biztime"
	"lldgw/internal/shared/db"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(gormDB *gorm.DB) *OrderRepository {
	return &OrderRepository{db: gormDB}
}

var _ order.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	o.SetID(model.ID)

	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":               model.Status,
			"lld_display_amount":   model.LLDDisplayAmount,
			"lld_exact_plancks":    model.LLDExactPlancks,
			"lld_gateway_link":     model.LLDGatewayLink,
			"lld_merchant_address": model.LLDMerchantAddress,
			"lld_rate_snapshot":    model.LLDRateSnapshot,
			"lld_requested_at":     model.LLDRequestedAt,
			"tx_hash":              model.TxHash,
			"paid_at":              model.PaidAt,
			"emails_sent":          model.EmailsSent,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel

	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Items").
		First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

// MarkPaid transitions the order from on-hold to the given paid status. The
// WHERE clause re-checks the awaiting state, so of N racing callers exactly
// one observes RowsAffected == 1 and wins.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uint, status vo.OrderStatus, txHash string) (bool, error) {
	now := biztime.NowUTC()

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", id, vo.OrderStatusOnHold.String()).
		Updates(map[string]interface{}{
			"status":     status.String(),
			"tx_hash":    txHash,
			"paid_at":    now,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// MarkEmailsSent flips the emails-sent flag. The conditional update makes the
// flip a test-and-set, so only one of N racing callers gets true.
func (r *OrderRepository) MarkEmailsSent(ctx context.Context, id uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ? AND emails_sent = ?", id, false).
		Updates(map[string]interface{}{
			"emails_sent": true,
			"updated_at":  biztime.NowUTC(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to mark emails sent: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *OrderRepository) IsPaid(ctx context.Context, id uint) (bool, error) {
	var status string

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Pluck("status", &status).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order status: %w", err)
	}
	if status == "" {
		return false, order.ErrNotFound
	}

	return vo.OrderStatus(status).IsPaid(), nil
}

// ListAwaitingPayment returns ids of on-hold orders whose payment request
// was created before the cutoff, oldest first. Used by the background sweep.
func (r *OrderRepository) ListAwaitingPayment(ctx context.Context, olderThan time.Time, limit int) ([]uint, error) {
	var ids []uint

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("status = ? AND payment_method = ? AND lld_requested_at < ?",
			vo.OrderStatusOnHold.String(), order.PaymentMethodLLD, olderThan).
		Order("lld_requested_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list awaiting-payment orders: %w", err)
	}

	return ids, nil
}

func (r *OrderRepository) AppendNote(ctx context.Context, id uint, note string) error {
	model := &models.OrderNoteModel{
		OrderID:   id,
		Note:      note,
		CreatedAt: biztime.NowUTC(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append order note: %w", err)
	}

	return nil
}
