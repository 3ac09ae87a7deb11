package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	UserID  uint   `gorm:"not null"`
	Address string `gorm:"size:300;not null"`
	Billing bool   `gorm:"not null;default:false"`
}
