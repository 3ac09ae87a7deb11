package models

import "gorm.io/gorm"

const (
	GroupRoleOwner  = "owner"
	GroupRoleMember = "member"
)

type CompanyGroup struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	OwnerID     uint   `gorm:"not null"`
	Owner       User
	Memberships []CompanyGroupMembership `gorm:"foreignKey:GroupID"`
}

type CompanyGroupMembership struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex:idx_group_member"`
	User    User
	GroupID uint `gorm:"not null;uniqueIndex:idx_group_member"`
	Group   CompanyGroup
	Role    string `gorm:"size:20;not null"`
}
