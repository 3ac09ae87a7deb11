package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func addressJSON(address *models.Address) gin.H {
	return gin.H{
		"address_id": address.ID,
		"address":    address.Address,
		"billing":    address.Billing,
	}
}

// hasOtherBillingAddress reports whether the user already marked a
// different address as billing.
func hasOtherBillingAddress(db *gorm.DB, userID uint, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Address{}).
		Where("user_id = ? AND billing = ? AND id <> ?", userID, true, excludeID).
		Count(&count).Error
	return count > 0, err
}

// GetAddressListHandler lists the authenticated user's addresses.
func GetAddressListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(addresses))
	for _, address := range addresses {
		list = append(list, addressJSON(&address))
	}

	c.JSON(http.StatusOK, gin.H{"addresses": list})
}

// CreateAddressHandler adds an address for the authenticated user. Only one
// billing address may exist per user.
func CreateAddressHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Address string `json:"address" binding:"required"`
		Billing bool   `json:"billing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Billing {
		taken, err := hasOtherBillingAddress(db, userID, 0)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, fmt.Errorf("%w: a billing address already exists", models.ErrInvalidState))
			return
		}
	}

	address := models.Address{
		UserID:  userID,
		Address: req.Address,
		Billing: req.Billing,
	}
	if err := db.Create(&address).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, addressJSON(&address))
}

// UpdateAddressHandler patches one of the user's addresses.
func UpdateAddressHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	addressID := c.Param("addressID")

	var address models.Address
	err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Address *string `json:"address"`
		Billing *bool   `json:"billing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Billing != nil && *req.Billing {
		taken, err := hasOtherBillingAddress(db, userID, address.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, fmt.Errorf("%w: a billing address already exists", models.ErrInvalidState))
			return
		}
	}

	if req.Address != nil {
		address.Address = *req.Address
	}
	if req.Billing != nil {
		address.Billing = *req.Billing
	}

	if err := db.Save(&address).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addressJSON(&address))
}

// DeleteAddressHandler removes one of the user's addresses.
func DeleteAddressHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	addressID := c.Param("addressID")

	result := db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBillingAddressHandler returns the user's billing address or 404.
func GetBillingAddressHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var address models.Address
	err := db.Where("user_id = ? AND billing = ?", userID, true).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Billing address not found."})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addressJSON(&address))
}
