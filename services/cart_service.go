package services

import (
	"errors"
	"fmt"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB    *gorm.DB
	Carts *repository.CartRepository
	Menu  *repository.MenuRepository
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, menu *repository.MenuRepository) *CartService {
	return &CartService{DB: db, Carts: carts, Menu: menu}
}

func (s *CartService) List(userID uint) ([]entity.CartItem, decimal.Decimal, error) {
	items, err := s.Carts.ListForUser(s.DB, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return items, total, nil
}

// Add merges into an existing line for the same menu item or creates a new
// one. Both paths snapshot the menu item's *current* price, so repeated adds
// refresh the unit price; Update deliberately does not (see Update).
func (s *CartService) Add(userID, menuItemID uint, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	item, err := s.Menu.GetMenuItem(menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	line := &entity.CartItem{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}

	// UpsertItem leaves the merged row state in line
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.UpsertItem(tx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// Update replaces the quantity and recomputes the line total from the
// *stored* unit price. Only Add refreshes the price snapshot.
func (s *CartService) Update(userID, itemID uint, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	line, err := s.Carts.GetForUser(userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	line.Quantity = quantity
	line.Price = line.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.Save(tx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *CartService) Remove(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.RemoveItem(tx, userID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.Clear(tx, userID)
	})
}
