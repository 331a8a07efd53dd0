package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lldgw/internal/application/gateway/stock"
	"lldgw/internal/domain/order"
	"lldgw/internal/infrastructure/persistence/models"
	"lldgw/internal/shared/db"
	"lldgw/internal/shared/logger"
)

// StockRepository decrements product stock when a payment request reserves
// inventory.
type StockRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewStockRepository(gormDB *gorm.DB, log logger.Interface) *StockRepository {
	return &StockRepository{db: gormDB, logger: log}
}

var _ stock.Adjuster = (*StockRepository)(nil)

// ReduceStockLevels decrements stock for each line item. The guard keeps
// stock non-negative; an oversold item is logged and skipped rather than
// failing the checkout.
func (r *StockRepository) ReduceStockLevels(ctx context.Context, o *order.Order) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for _, item := range o.Items() {
		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))

		if result.Error != nil {
			return fmt.Errorf("failed to reduce stock for product %d: %w", item.ProductID, result.Error)
		}
		if result.RowsAffected == 0 {
			r.logger.Warnw("insufficient stock, skipping decrement",
				"order_id", o.ID(),
				"product_id", item.ProductID,
				"quantity", item.Quantity,
			)
		}
	}

	return nil
}
