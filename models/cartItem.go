package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID   uint `gorm:"not null"`
	ItemID   uint `gorm:"not null"`
	Item     Item
	Quantity uint `gorm:"not null"`
}
