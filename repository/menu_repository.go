package repository

import (
	"github.com/Ludvin7x/lemon-api/entity"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// ---------------- Categories ----------------

func (r *MenuRepository) ListCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("title ASC").Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) GetCategory(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *MenuRepository) CreateCategory(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *MenuRepository) SaveCategory(cat *entity.Category) error {
	return r.DB.Save(cat).Error
}

func (r *MenuRepository) DeleteCategory(id uint) error {
	// physical delete: a soft-deleted row would keep holding the unique
	// slug/title indexes and block recreating the category
	return r.DB.Unscoped().Delete(&entity.Category{}, id).Error
}

// ---------------- Menu items ----------------

type MenuItemFilter struct {
	CategoryID *uint
	Featured   *bool
}

func (r *MenuRepository) ListMenuItems(f MenuItemFilter) ([]entity.MenuItem, error) {
	db := r.DB.Model(&entity.MenuItem{}).Preload("Category")
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	if f.Featured != nil {
		db = db.Where("featured = ?", *f.Featured)
	}
	var items []entity.MenuItem
	err := db.Order("title ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) CreateMenuItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) SaveMenuItem(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) DeleteMenuItem(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}
