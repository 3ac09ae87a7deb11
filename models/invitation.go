package models

import "gorm.io/gorm"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined InvitationStatus = "DECLINED"
)

// GroupInvitation is addressed to an email, not a user: the invitee may
// register after being invited. The token is the only credential needed to
// resolve it.
type GroupInvitation struct {
	gorm.Model
	Email       string `gorm:"not null"`
	GroupID     uint   `gorm:"not null"`
	Group       CompanyGroup
	InvitedByID uint `gorm:"not null"`
	InvitedBy   User
	InviteToken string           `gorm:"uniqueIndex;not null"`
	Status      InvitationStatus `gorm:"size:20;not null"`
}
