package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const itemCacheKey = "items"

type cachedItem struct {
	ItemID          uint            `json:"item_id"`
	ItemPrice       decimal.Decimal `json:"item_price"`
	Stock           uint            `json:"item_stock"`
	ItemName        string          `json:"item_name"`
	ItemDescription string          `json:"item_description"`
	Categories      []string        `json:"categories"`
	Images          []string        `json:"images"`
}

func toCachedItem(item *models.Item) cachedItem {
	categories := make([]string, 0, len(item.ItemDetails.Categories))
	for _, category := range item.ItemDetails.Categories {
		categories = append(categories, category.CategoryName)
	}
	images := make([]string, 0, len(item.ItemDetails.Images))
	for _, image := range item.ItemDetails.Images {
		images = append(images, image.ImageURL)
	}
	return cachedItem{
		ItemID:          item.ID,
		ItemPrice:       item.ItemPrice,
		Stock:           item.Stock,
		ItemName:        item.ItemDetails.ItemName,
		ItemDescription: item.ItemDetails.ItemDescription,
		Categories:      categories,
		Images:          images,
	}
}

// rebuildItemCache replaces the price-scored item ZSET from the database.
func rebuildItemCache(c *gin.Context, db *gorm.DB, rdb *redis.Client) error {
	var items []models.Item
	err := db.
		Preload("ItemDetails").
		Preload("ItemDetails.Categories").
		Preload("ItemDetails.Images").
		Find(&items).Error
	if err != nil {
		return err
	}

	if err := rdb.Del(c, itemCacheKey).Err(); err != nil {
		return err
	}

	for _, item := range items {
		itemJSON, err := json.Marshal(toCachedItem(&item))
		if err != nil {
			return err
		}
		score, _ := item.ItemPrice.Float64()
		err = rdb.ZAdd(c, itemCacheKey, redis.Z{
			Score:  score,
			Member: itemJSON,
		}).Err()
		if err != nil {
			return err
		}
	}

	return nil
}

// searchItems answers text-filtered listings straight from the database;
// the price-scored cache cannot serve name or category filters.
func searchItems(db *gorm.DB, filter itemFilter, offset, limit int) ([]cachedItem, error) {
	query := db.Model(&models.Item{}).
		Preload("ItemDetails").
		Preload("ItemDetails.Categories").
		Preload("ItemDetails.Images").
		Joins("JOIN item_details ON item_details.id = items.item_details_id")

	if filter.Name != "" {
		query = query.Where("item_details.item_name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Description != "" {
		query = query.Where("item_details.item_description LIKE ?", "%"+filter.Description+"%")
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN category_item_details ON category_item_details.item_details_id = item_details.id").
			Joins("JOIN categories ON categories.id = category_item_details.category_id").
			Where("categories.category_name = ?", filter.Category)
	}
	if filter.MinPrice != "" {
		query = query.Where("items.item_price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query = query.Where("items.item_price <= ?", filter.MaxPrice)
	}

	var items []models.Item
	err := query.
		Order("items.item_price").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	result := make([]cachedItem, 0, len(items))
	for i := range items {
		result = append(result, toCachedItem(&items[i]))
	}
	return result, nil
}

type itemFilter struct {
	Name        string
	Description string
	Category    string
	MinPrice    string
	MaxPrice    string
}

func (f itemFilter) hasTextFilter() bool {
	return f.Name != "" || f.Description != "" || f.Category != ""
}

// GetItemListHandler lists catalog items ordered by price with optional
// offset/limit paging. Price-range-only queries are served from the Redis
// cache; name, description and category filters go to the database.
func GetItemListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	filter := itemFilter{
		Name:        c.Query("item_name__icontains"),
		Description: c.Query("item_description__icontains"),
		Category:    c.Query("category"),
		MinPrice:    c.Query("item_price__gte"),
		MaxPrice:    c.Query("item_price__lte"),
	}

	if filter.hasTextFilter() {
		items, err := searchItems(db, filter, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": items,
		})
		return
	}

	count, err := rdb.ZCard(c, itemCacheKey).Result()
	if err != nil {
		respondError(c, err)
		return
	}
	if count == 0 {
		if err := rebuildItemCache(c, db, rdb); err != nil {
			respondError(c, err)
			return
		}
	}

	var members []string
	if filter.MinPrice != "" || filter.MaxPrice != "" {
		rangeBy := &redis.ZRangeBy{Min: "-inf", Max: "+inf",
			Offset: int64(offset), Count: int64(limit)}
		if filter.MinPrice != "" {
			rangeBy.Min = filter.MinPrice
		}
		if filter.MaxPrice != "" {
			rangeBy.Max = filter.MaxPrice
		}
		members, err = rdb.ZRangeByScore(c, itemCacheKey, rangeBy).Result()
	} else {
		members, err = rdb.ZRange(c, itemCacheKey, int64(offset), int64(offset+limit-1)).Result()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]cachedItem, 0, len(members))
	for _, member := range members {
		var item cachedItem
		if err := json.Unmarshal([]byte(member), &item); err != nil {
			respondError(c, err)
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}

func itemJSON(item *models.Item) gin.H {
	images := make([]gin.H, 0, len(item.ItemDetails.Images))
	for _, image := range item.ItemDetails.Images {
		images = append(images, gin.H{
			"image_id": image.ID,
			"image":    image.ImageURL,
		})
	}
	categories := make([]string, 0, len(item.ItemDetails.Categories))
	for _, category := range item.ItemDetails.Categories {
		categories = append(categories, category.CategoryName)
	}

	return gin.H{
		"item_id":    item.ID,
		"item_price": item.ItemPrice,
		"item_stock": item.Stock,
		"item_details": gin.H{
			"item_details_id":  item.ItemDetailsID,
			"item_name":        item.ItemDetails.ItemName,
			"item_description": item.ItemDetails.ItemDescription,
			"categories":       categories,
			"images":           images,
		},
	}
}

// GetItemDataHandler returns one item with its full details.
func GetItemDataHandler(c *gin.Context, db *gorm.DB) {
	itemID := c.Param("itemID")

	var item models.Item
	err := db.
		Preload("ItemDetails").
		Preload("ItemDetails.Categories").
		Preload("ItemDetails.Images").
		First(&item, "id = ?", itemID).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemJSON(&item))
}

type itemRequest struct {
	ItemName        string           `json:"item_name" binding:"required"`
	ItemDescription string           `json:"item_description"`
	ItemPrice       *decimal.Decimal `json:"item_price" binding:"required"`
	Stock           *uint            `json:"item_stock" binding:"required"`
	Categories      []string         `json:"categories"`
	Images          []string         `json:"images"`
}

func resolveCategories(db *gorm.DB, names []string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		var category models.Category
		err := db.Where(models.Category{CategoryName: name}).FirstOrCreate(&category).Error
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// CreateItemHandler adds a catalog item with details, categories and image
// URLs, then rebuilds the listing cache. Admin only.
func CreateItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ItemPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, models.NewFieldError("item_price", "Price must not be negative."))
		return
	}

	categories, err := resolveCategories(db, req.Categories)
	if err != nil {
		respondError(c, err)
		return
	}

	images := make([]models.ItemImage, 0, len(req.Images))
	for _, url := range req.Images {
		images = append(images, models.ItemImage{ImageURL: url})
	}

	item := models.Item{
		ItemDetails: models.ItemDetails{
			ItemName:        req.ItemName,
			ItemDescription: req.ItemDescription,
			Categories:      categories,
			Images:          images,
		},
		ItemPrice: *req.ItemPrice,
		Stock:     *req.Stock,
	}
	if err := db.Create(&item).Error; err != nil {
		respondError(c, err)
		return
	}

	if err := rebuildItemCache(c, db, rdb); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, itemJSON(&item))
}

// UpdateItemHandler patches price, stock or details of one item and
// rebuilds the listing cache. Admin only.
func UpdateItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	itemID := c.Param("itemID")

	var item models.Item
	err := db.Preload("ItemDetails").First(&item, "id = ?", itemID).Error
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		ItemName        *string          `json:"item_name"`
		ItemDescription *string          `json:"item_description"`
		ItemPrice       *decimal.Decimal `json:"item_price"`
		Stock           *uint            `json:"item_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.ItemPrice != nil {
		if req.ItemPrice.IsNegative() {
			c.JSON(http.StatusBadRequest, models.NewFieldError("item_price", "Price must not be negative."))
			return
		}
		item.ItemPrice = *req.ItemPrice
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.ItemName != nil {
		item.ItemDetails.ItemName = *req.ItemName
	}
	if req.ItemDescription != nil {
		item.ItemDetails.ItemDescription = *req.ItemDescription
	}

	if err := db.Save(&item.ItemDetails).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := db.Save(&item).Error; err != nil {
		respondError(c, err)
		return
	}

	if err := rebuildItemCache(c, db, rdb); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemJSON(&item))
}

// DeleteItemHandler removes one item and rebuilds the listing cache. Admin
// only.
func DeleteItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	itemID := c.Param("itemID")

	result := db.Delete(&models.Item{}, "id = ?", itemID)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := rebuildItemCache(c, db, rdb); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success"})
}

// GetCategoryListHandler lists all catalog categories. Admin only.
func GetCategoryListHandler(c *gin.Context, db *gorm.DB) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		respondError(c, err)
		return
	}

	names := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		names = append(names, gin.H{
			"category_id":   category.ID,
			"category_name": category.CategoryName,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": names})
}
