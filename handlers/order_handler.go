package handlers

import (
	"log"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/mailservice"
	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func orderItemsJSON(orderItems []models.OrderItem) []gin.H {
	items := make([]gin.H, 0, len(orderItems))
	for _, orderItem := range orderItems {
		items = append(items, gin.H{
			"item_id":  orderItem.ItemID,
			"quantity": orderItem.Quantity,
			"price":    orderItem.Price,
		})
	}
	return items
}

func orderJSON(order *models.Order) gin.H {
	return gin.H{
		"order_id":     order.ID,
		"order_date":   order.CreatedAt,
		"order_status": order.OrderStatus,
		"order_total":  order.OrderTotal,
		"order_active": order.OrderActive,
		"order_info": gin.H{
			"buyer_name":    order.OrderInfo.BuyerName,
			"buyer_email":   order.OrderInfo.BuyerEmail,
			"buyer_phone":   order.OrderInfo.BuyerPhone,
			"buyer_address": order.OrderInfo.BuyerAddress,
		},
		"items": orderItemsJSON(order.OrderItems),
	}
}

// SendOrderHandler places an order. Anonymous checkout is allowed; when the
// caller is authenticated the order is attached to their account and the
// ordered items are removed from their cart afterwards.
func SendOrderHandler(c *gin.Context, db *gorm.DB, mail *mailservice.Client) {
	var orderReq OrderRequest
	if err := c.ShouldBindJSON(&orderReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	userID := currentUserID(c)

	order, err := CreateOrder(db, &orderReq, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Post-commit side effects, best effort only.
	mail.SendOrderConfirmationMail(order)
	if userID != nil {
		if err := removeOrderedCartItems(db, *userID, order.OrderItems); err != nil {
			log.Printf("order %d created, clearing cart items failed: %v", order.ID, err)
		}
	}

	c.JSON(http.StatusCreated, orderJSON(order))
}

// GetOrderListHandler lists the authenticated user's orders, newest first.
func GetOrderListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var orders []models.Order
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}

	orderList := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		orderList = append(orderList, gin.H{
			"order_id":     order.ID,
			"order_date":   order.CreatedAt,
			"order_status": order.OrderStatus,
			"order_total":  order.OrderTotal,
			"order_active": order.OrderActive,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orderList,
	})
}

// GetOrderDataHandler returns one of the authenticated user's orders with
// buyer info and line items.
func GetOrderDataHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	var order models.Order
	err := db.
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("OrderInfo").
		Preload("OrderItems").
		Preload("OrderItems.Item.ItemDetails").
		First(&order).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderJSON(&order))
}
