package models

import "time"

type OrderModel struct {
	ID               uint   `gorm:"primaryKey"`
	BillingName      string `gorm:"size:255"`
	BillingEmail     string `gorm:"size:255;not null"`
	Currency         string `gorm:"size:10;not null;default:'USD'"`
	FiatTotal        string `gorm:"size:64;not null"`
	PaymentMethod    string `gorm:"size:32;not null;index"`
	Status           string `gorm:"size:20;not null;index"`
	RequiresShipping bool   `gorm:"not null;default:false"`

	LLDDisplayAmount   *string `gorm:"size:64"`
	LLDExactPlancks    *string `gorm:"size:64"`
	LLDGatewayLink     *string `gorm:"type:text"`
	LLDMerchantAddress *string `gorm:"size:128"`
	LLDRateSnapshot    *string `gorm:"size:64"`
	LLDRequestedAt     *time.Time

	TxHash     *string `gorm:"size:128"`
	PaidAt     *time.Time
	EmailsSent bool `gorm:"not null;default:false"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`

	Version   int `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderNoteModel is the append-only audit trail for an order.
type OrderNoteModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null"`
	Note      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (OrderNoteModel) TableName() string {
	return "order_notes"
}

type ProductModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Stock     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string {
	return "products"
}
