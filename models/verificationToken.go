package models

import "gorm.io/gorm"

const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposePasswordReset = "password_reset"
)

// VerificationToken is a single-use opaque token mailed to the user, either
// to confirm an email address or to authorize a password reset.
type VerificationToken struct {
	gorm.Model
	Token   string `gorm:"uniqueIndex;not null"`
	UserID  uint   `gorm:"not null"`
	User    User
	Purpose string `gorm:"size:30;not null"`
}
