package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusReturned  OrderStatus = "RETURNED"
)

// Order total is derived server-side, never taken from the request.
type Order struct {
	gorm.Model
	UserID      *uint //nil when the order was placed anonymously
	User        *User
	OrderStatus OrderStatus     `gorm:"size:20;not null"`
	OrderTotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderActive bool            `gorm:"not null;default:true"`
	OrderInfo   OrderInfo       `gorm:"foreignKey:OrderID"`
	OrderItems  []OrderItem     `gorm:"foreignKey:OrderID"`
}
