package repository

import (
	"github.com/Ludvin7x/lemon-api/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// OrderFilter narrows List to the caller's visibility scope plus optional
// request filters. Nil scope pointers mean "no restriction".
type OrderFilter struct {
	UserID         *uint
	DeliveryCrewID *uint
	Status         string
	OrderBy        string // "date" | "-date" | "status" | "-status"
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Preload("Items.MenuItem").First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(f OrderFilter) ([]entity.Order, error) {
	db := r.DB.Model(&entity.Order{}).Preload("Items").Preload("Items.MenuItem")
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.DeliveryCrewID != nil {
		db = db.Where("delivery_crew_id = ?", *f.DeliveryCrewID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	switch f.OrderBy {
	case "date":
		db = db.Order("date ASC")
	case "status":
		db = db.Order("status ASC")
	case "-status":
		db = db.Order("status DESC")
	default:
		db = db.Order("date DESC")
	}

	var orders []entity.Order
	err := db.Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Updates(tx *gorm.DB, orderID uint, fields map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields).Error
}

func (r *OrderRepository) Delete(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}
