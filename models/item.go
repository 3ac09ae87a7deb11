package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemDetails struct {
	gorm.Model
	ItemName        string      `gorm:"size:100;not null"`
	ItemDescription string      `gorm:"size:1000"`
	Categories      []Category  `gorm:"many2many:category_item_details;"`
	Images          []ItemImage `gorm:"foreignKey:ItemDetailsID"`
}

type ItemImage struct {
	gorm.Model
	ItemDetailsID uint
	ImageURL      string `gorm:"not null"`
}

type Category struct {
	gorm.Model
	CategoryName string        `gorm:"unique;not null"`
	ItemDetails  []ItemDetails `gorm:"many2many:category_item_details;"`
}

// Item carries the sellable unit. Price and stock belong to catalog
// management; the order workflow only reads the price and decrements stock
// inside its own transaction.
type Item struct {
	gorm.Model
	ItemDetailsID uint `gorm:"not null"`
	ItemDetails   ItemDetails
	ItemPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock         uint            `gorm:"not null"`
}
