package handlers

import (
	"errors"
	"fmt"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderInfoRequest struct {
	BuyerName    string `json:"buyer_name"`
	BuyerEmail   string `json:"buyer_email"`
	BuyerPhone   string `json:"buyer_phone"`
	BuyerAddress string `json:"buyer_address"`
}

type OrderItemRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity uint `json:"quantity"`
}

type OrderRequest struct {
	OrderInfo *OrderInfoRequest  `json:"order_info"`
	Items     []OrderItemRequest `json:"items"`
}

func validateOrderRequest(req *OrderRequest) models.ValidationError {
	errs := models.ValidationError{}

	if req.OrderInfo == nil {
		errs["order_info"] = "This field is required."
	} else {
		if req.OrderInfo.BuyerName == "" {
			errs["buyer_name"] = "This field is required."
		}
		if req.OrderInfo.BuyerEmail == "" {
			errs["buyer_email"] = "This field is required."
		}
		if req.OrderInfo.BuyerPhone == "" {
			errs["buyer_phone"] = "This field is required."
		}
		if req.OrderInfo.BuyerAddress == "" {
			errs["buyer_address"] = "This field is required."
		}
	}

	if len(req.Items) == 0 {
		errs["items"] = "At least one item is required to create an order."
	} else {
		for _, line := range req.Items {
			if line.Quantity < 1 {
				errs["items"] = fmt.Sprintf("Quantity for item %d must be at least 1.", line.ItemID)
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// lockItemForUpdate resolves an item under a row lock so concurrent orders
// cannot oversell it. SQLite (used by the tests) has no FOR UPDATE; its
// writes are serialized anyway.
func lockItemForUpdate(tx *gorm.DB, itemID uint) (*models.Item, error) {
	query := tx
	if tx.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item models.Item
	if err := query.Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateOrder persists an order, its buyer info and its line items as one
// all-or-nothing transaction. The total is accumulated server-side from the
// current item prices, each line snapshots its unit price, and stock is
// decremented in the same transaction. Any failure leaves no rows behind.
func CreateOrder(db *gorm.DB, req *OrderRequest, userID *uint) (*models.Order, error) {
	if errs := validateOrderRequest(req); errs != nil {
		return nil, errs
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	order := models.Order{
		UserID:      userID,
		OrderStatus: models.OrderStatusPending,
		OrderTotal:  decimal.Zero,
		OrderActive: true,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderInfo := models.OrderInfo{
		OrderID:      order.ID,
		BuyerName:    req.OrderInfo.BuyerName,
		BuyerEmail:   req.OrderInfo.BuyerEmail,
		BuyerPhone:   req.OrderInfo.BuyerPhone,
		BuyerAddress: req.OrderInfo.BuyerAddress,
	}
	if err := tx.Create(&orderInfo).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create order info: %w", err)
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		item, err := lockItemForUpdate(tx, line.ItemID)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewFieldError("items", fmt.Sprintf("Item %d does not exist.", line.ItemID))
			}
			return nil, fmt.Errorf("resolve item %d: %w", line.ItemID, err)
		}

		if item.Stock < line.Quantity {
			tx.Rollback()
			return nil, models.NewFieldError("items", fmt.Sprintf("Insufficient stock for item %d.", line.ItemID))
		}

		item.Stock -= line.Quantity
		if err := tx.Save(item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("update stock for item %d: %w", line.ItemID, err)
		}

		orderItem := models.OrderItem{
			OrderID:  order.ID,
			ItemID:   item.ID,
			Quantity: line.Quantity,
			Price:    item.ItemPrice,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("create order item: %w", err)
		}

		total = total.Add(item.ItemPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		orderItems = append(orderItems, orderItem)
	}

	if err := tx.Model(&order).Update("order_total", total).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update order total: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("commit order: %w", err)
	}

	order.OrderTotal = total
	order.OrderInfo = orderInfo
	order.OrderItems = orderItems
	return &order, nil
}

// removeOrderedCartItems drops the ordered items from the user's cart after
// the order committed. A failure here never unwinds the order.
func removeOrderedCartItems(db *gorm.DB, userID uint, items []models.OrderItem) error {
	var cart models.ShoppingCart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	itemIDs := make([]uint, 0, len(items))
	for _, orderItem := range items {
		itemIDs = append(itemIDs, orderItem.ItemID)
	}

	return db.
		Where("cart_id = ? AND item_id IN ?", cart.ID, itemIDs).
		Delete(&models.CartItem{}).
		Error
}
