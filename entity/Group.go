package entity

import (
	"gorm.io/gorm"
)

// Role groups. Seeded names: "Manager", "Delivery crew", "Customer".
type Group struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Users []User `gorm:"many2many:user_groups;" json:"-"`
}

const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
	GroupCustomer     = "Customer"
)
