package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"isAdmin"`

	Groups []Group `gorm:"many2many:user_groups;" json:"-"`

	// Relations — preload only when needed
	Orders     []Order    `json:"-"`
	Deliveries []Order    `gorm:"foreignKey:DeliveryCrewID" json:"-"`
	CartItems  []CartItem `json:"-"`
}
