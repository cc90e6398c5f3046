package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is immutable after order creation.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"not null;uniqueIndex:idx_order_item" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_order_item" json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unitPrice"`
	Price     decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
}
