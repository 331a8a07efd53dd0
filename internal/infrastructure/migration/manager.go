package migration

import (
	"fmt"

	"gorm.io/gorm"

	"lldgw/internal/infrastructure/persistence/models"
	"lldgw/internal/shared/logger"
)

// Manager applies schema migrations with gorm's AutoMigrate.
type Manager struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewManager(db *gorm.DB, log logger.Interface) *Manager {
	return &Manager{db: db, logger: log}
}

func (m *Manager) Migrate() error {
	m.logger.Infow("running database migrations")

	if err := m.db.AutoMigrate(
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.OrderNoteModel{},
		&models.ProductModel{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Infow("database migrations completed")
	return nil
}
