package models

import "gorm.io/gorm"

// OrderInfo holds the buyer contact captured at order time, exactly one per
// order, independent of any user account.
type OrderInfo struct {
	gorm.Model
	OrderID      uint   `gorm:"uniqueIndex;not null"`
	BuyerName    string `gorm:"size:100;not null"`
	BuyerEmail   string `gorm:"not null"`
	BuyerPhone   string `gorm:"size:15;not null"`
	BuyerAddress string `gorm:"size:300;not null"`
}
