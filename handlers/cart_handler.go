package handlers

import (
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type cartItemRequest struct {
	Item     uint  `json:"item" binding:"required"`
	Quantity *uint `json:"quantity" binding:"required"`
}

// SetCartItemHandler sets the quantity of one cart line; 0 removes it.
func SetCartItemHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	if err := SetCartItem(db, userID, req.Item, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "Success",
	})
}

// ClearCartHandler removes every item from the user's cart.
func ClearCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := ClearCart(db, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func cartJSON(cart *models.ShoppingCart) gin.H {
	items := make([]gin.H, 0, len(cart.CartItems))
	for _, cartItem := range cart.CartItems {
		items = append(items, gin.H{
			"item":       cartItem.ItemID,
			"item_name":  cartItem.Item.ItemDetails.ItemName,
			"item_price": cartItem.Item.ItemPrice,
			"quantity":   cartItem.Quantity,
		})
	}
	return gin.H{
		"cart_id":    cart.ID,
		"items":      items,
		"updated_at": cart.UpdatedAt,
	}
}

// GetCartHandler returns the user's cart with item details.
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	cart, err := GetCart(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartJSON(cart))
}
