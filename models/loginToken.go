package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken mirrors issued JWTs so logout can revoke them server-side.
type LoginToken struct {
	gorm.Model
	Token          string `gorm:"size:512;not null;index"`
	ExpirationTime time.Time
	UserID         uint
	Role           string
}
