package models

import "gorm.io/gorm"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null"`
	Password     string `gorm:"not null"`
	FirstName    string
	LastName     string
	CompanyID    string
	CompanyName  string
	Phone        string
	Role         string `gorm:"not null;default:member"`
	Verified     bool   `gorm:"not null;default:false"`
	Active       bool   `gorm:"not null;default:true"`
	ShoppingCart *ShoppingCart
	Addresses    []Address
	Orders       []Order
	LoginTokens  []LoginToken
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
