package repository

import (
	"github.com/Ludvin7x/lemon-api/entity"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindWithGroups(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Preload("Groups").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

// ---------------- Groups ----------------

func (r *UserRepository) GroupByName(name string) (*entity.Group, error) {
	var g entity.Group
	if err := r.DB.Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *UserRepository) ListGroupMembers(groupName string) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.
		Joins("JOIN user_groups ug ON ug.user_id = users.id").
		Joins("JOIN groups g ON g.id = ug.group_id").
		Where("g.name = ?", groupName).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) IsInGroup(userID uint, groupName string) (bool, error) {
	var count int64
	err := r.DB.Table("user_groups ug").
		Joins("JOIN groups g ON g.id = ug.group_id").
		Where("ug.user_id = ? AND g.name = ?", userID, groupName).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) AddToGroup(tx *gorm.DB, user *entity.User, group *entity.Group) error {
	return tx.Model(user).Association("Groups").Append(group)
}

func (r *UserRepository) RemoveFromGroup(tx *gorm.DB, user *entity.User, group *entity.Group) error {
	return tx.Model(user).Association("Groups").Delete(group)
}
