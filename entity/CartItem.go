package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// One cart line per (user, menu item); the unique index serializes
// concurrent adds for the same pair.
type CartItem struct {
	gorm.Model
	UserID     uint     `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"userId"`
	User       User     `json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unitPrice"`
	// Price = UnitPrice * Quantity, always recomputed, never set directly.
	Price decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
}
