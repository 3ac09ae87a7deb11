package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots the unit price at order time so later catalog price
// changes never touch historical orders.
type OrderItem struct {
	gorm.Model
	OrderID  uint `gorm:"not null"`
	ItemID   uint `gorm:"not null"`
	Item     Item
	Quantity uint            `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
