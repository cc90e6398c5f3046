package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem price only affects future cart/order lines: existing lines carry
// their own unit_price snapshot, so editing Price here never rewrites history.
type MenuItem struct {
	gorm.Model
	Title    string          `gorm:"index;not null" json:"title"`
	Price    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Featured bool            `gorm:"index" json:"featured"`

	CategoryID uint     `gorm:"index;not null" json:"categoryId"`
	Category   Category `json:"-"`
}
