package handlers

import (
	"errors"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func shoppingListJSON(list *models.ShoppingList) gin.H {
	items := make([]gin.H, 0, len(list.Items))
	for _, listItem := range list.Items {
		items = append(items, gin.H{
			"item_id":  listItem.ItemID,
			"quantity": listItem.Quantity,
		})
	}
	body := gin.H{
		"list_id":     list.ID,
		"name":        list.Name,
		"is_personal": list.IsPersonal,
		"items":       items,
	}
	if list.GroupID != nil {
		body["group_id"] = *list.GroupID
	}
	return body
}

// validateListScope enforces that a list is personal xor group-bound.
func validateListScope(isPersonal bool, groupID *uint) models.ValidationError {
	if isPersonal && groupID != nil {
		return models.NewFieldError("group", "A personal list cannot belong to a group.")
	}
	if !isPersonal && groupID == nil {
		return models.NewFieldError("group", "A group list must belong to a group.")
	}
	return nil
}

// CreateShoppingListHandler creates a personal or group shopping list.
// Group lists require the caller to be a member of the group.
func CreateShoppingListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name       string `json:"name" binding:"required"`
		IsPersonal bool   `json:"is_personal"`
		GroupID    *uint  `json:"group_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validateListScope(req.IsPersonal, req.GroupID); errs != nil {
		respondError(c, errs)
		return
	}

	if req.GroupID != nil {
		var membership models.CompanyGroupMembership
		err := db.
			Where("user_id = ? AND group_id = ?", userID, *req.GroupID).
			First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})
				return
			}
			respondError(c, err)
			return
		}
	}

	list := models.ShoppingList{
		Name:        req.Name,
		CreatedByID: userID,
		IsPersonal:  req.IsPersonal,
		GroupID:     req.GroupID,
	}
	if err := db.Create(&list).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shoppingListJSON(&list))
}

// GetShoppingListsHandler lists the caller's shopping lists, optionally
// filtered by is_personal=true|false.
func GetShoppingListsHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	query := db.Preload("Items").Where("created_by_id = ?", userID)
	switch c.Query("is_personal") {
	case "true":
		query = query.Where("is_personal = ?", true)
	case "false":
		query = query.Where("is_personal = ?", false)
	}

	var lists []models.ShoppingList
	if err := query.Find(&lists).Error; err != nil {
		respondError(c, err)
		return
	}

	body := make([]gin.H, 0, len(lists))
	for _, list := range lists {
		body = append(body, shoppingListJSON(&list))
	}

	c.JSON(http.StatusOK, gin.H{"shopping_lists": body})
}

func loadOwnShoppingList(c *gin.Context, db *gorm.DB) (*models.ShoppingList, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return nil, false
	}
	listID := c.Param("listID")

	var list models.ShoppingList
	err := db.Where("id = ? AND created_by_id = ?", listID, userID).First(&list).Error
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return &list, true
}

// AddShoppingListItemHandler appends an item line to a list.
func AddShoppingListItemHandler(c *gin.Context, db *gorm.DB) {
	list, ok := loadOwnShoppingList(c, db)
	if !ok {
		return
	}

	var req struct {
		ItemID   uint  `json:"item_id" binding:"required"`
		Quantity *uint `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var item models.Item
	if err := db.First(&item, req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, models.NewFieldError("item_id", "Item does not exist."))
			return
		}
		respondError(c, err)
		return
	}

	err := db.Create(&models.ShoppingListItem{
		ShoppingListID: list.ID,
		ItemID:         req.ItemID,
		Quantity:       *req.Quantity,
	}).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Item added successfully."})
}

// UpdateShoppingListItemHandler changes the quantity of one list line.
func UpdateShoppingListItemHandler(c *gin.Context, db *gorm.DB) {
	list, ok := loadOwnShoppingList(c, db)
	if !ok {
		return
	}

	var req struct {
		ItemID   uint  `json:"item_id" binding:"required"`
		Quantity *uint `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var listItem models.ShoppingListItem
	err := db.
		Where("shopping_list_id = ? AND item_id = ?", list.ID, req.ItemID).
		First(&listItem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in this shopping list."})
			return
		}
		respondError(c, err)
		return
	}

	listItem.Quantity = *req.Quantity
	if err := db.Save(&listItem).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Item updated successfully."})
}

// RemoveShoppingListItemHandler deletes one list line.
func RemoveShoppingListItemHandler(c *gin.Context, db *gorm.DB) {
	list, ok := loadOwnShoppingList(c, db)
	if !ok {
		return
	}

	var req struct {
		ItemID uint `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := db.
		Where("shopping_list_id = ? AND item_id = ?", list.ID, req.ItemID).
		Delete(&models.ShoppingListItem{})
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in this shopping list."})
		return
	}

	c.Status(http.StatusNoContent)
}
