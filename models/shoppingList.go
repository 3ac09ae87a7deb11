package models

import "gorm.io/gorm"

// ShoppingList is either personal (no group) or shared within a company
// group, never both.
type ShoppingList struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	CreatedByID uint   `gorm:"not null"`
	CreatedBy   User
	IsPersonal  bool
	GroupID     *uint
	Group       *CompanyGroup
	Items       []ShoppingListItem `gorm:"foreignKey:ShoppingListID"`
}

type ShoppingListItem struct {
	gorm.Model
	ShoppingListID uint `gorm:"not null"`
	ItemID         uint `gorm:"not null"`
	Item           Item
	Quantity       uint `gorm:"not null"`
}
