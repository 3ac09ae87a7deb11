package models

import "gorm.io/gorm"

type ShoppingCart struct {
	gorm.Model
	UserID    uint       `gorm:"uniqueIndex;not null"`
	CartItems []CartItem `gorm:"foreignKey:CartID"`
}
