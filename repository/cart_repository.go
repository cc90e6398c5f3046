package repository

import (
	"errors"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) ListForUser(db *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := db.Where("user_id = ?", userID).
		Preload("MenuItem").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) GetForUser(userID, itemID uint) (*entity.CartItem, error) {
	var item entity.CartItem
	if err := r.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem merges into an existing (user, menu item) line or creates one.
// On merge the quantity accumulates and the unit price is replaced with the
// incoming snapshot; the line total is always recomputed from those two.
func (r *CartRepository) UpsertItem(tx *gorm.DB, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("user_id = ? AND menu_item_id = ?", row.UserID, row.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Quantity += row.Quantity
		exist.UnitPrice = row.UnitPrice
		exist.Price = exist.UnitPrice.Mul(decimal.NewFromInt(int64(exist.Quantity)))
		if err := tx.Save(&exist).Error; err != nil {
			return err
		}
		*row = exist
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}

func (r *CartRepository) Save(tx *gorm.DB, row *entity.CartItem) error {
	return tx.Save(row).Error
}

// Cart lines are deleted physically: a soft-deleted row would still occupy
// the (user, menu item) unique index and block re-adding the same item.

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) error {
	// no error when the line is already gone
	return tx.Unscoped().Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&entity.CartItem{}).Error
}

// RemoveLines deletes exactly the given lines. Order conversion uses this
// instead of Clear so a line added concurrently with the conversion is not
// destroyed without appearing in the order.
func (r *CartRepository) RemoveLines(tx *gorm.DB, userID uint, lineIDs []uint) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return tx.Unscoped().Where("user_id = ? AND id IN ?", userID, lineIDs).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.CartItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
