package handlers

import (
	"errors"
	"fmt"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"gorm.io/gorm"
)

// getOrCreateCart lazily creates the user's cart on first use.
func getOrCreateCart(db *gorm.DB, userID uint) (*models.ShoppingCart, error) {
	var cart models.ShoppingCart
	err := db.
		Where(models.ShoppingCart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return &cart, nil
}

// SetCartItem upserts one cart line. A quantity below 1 removes the line
// instead; both directions are idempotent for the same final arguments.
func SetCartItem(db *gorm.DB, userID uint, itemID uint, quantity uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	if quantity < 1 {
		return db.
			Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
			Delete(&models.CartItem{}).
			Error
	}

	var item models.Item
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewFieldError("item", fmt.Sprintf("Item %d does not exist.", itemID))
		}
		return fmt.Errorf("resolve item %d: %w", itemID, err)
	}

	var cartItem models.CartItem
	err = db.
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		First(&cartItem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&models.CartItem{
				CartID:   cart.ID,
				ItemID:   itemID,
				Quantity: quantity,
			}).Error
		}
		return fmt.Errorf("lookup cart item: %w", err)
	}

	cartItem.Quantity = quantity
	return db.Save(&cartItem).Error
}

// ClearCart removes every line from the user's cart.
func ClearCart(db *gorm.DB, userID uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	return db.
		Where("cart_id = ?", cart.ID).
		Delete(&models.CartItem{}).
		Error
}

// GetCart loads the user's cart with items and their catalog details.
func GetCart(db *gorm.DB, userID uint) (*models.ShoppingCart, error) {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	err = db.
		Preload("CartItems").
		Preload("CartItems.Item.ItemDetails").
		First(cart, cart.ID).Error
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}
