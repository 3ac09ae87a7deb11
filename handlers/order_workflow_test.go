package handlers

import (
	"testing"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validOrderInfo() *OrderInfoRequest {
	return &OrderInfoRequest{
		BuyerName:    "A",
		BuyerEmail:   "a@b.com",
		BuyerPhone:   "123",
		BuyerAddress: "X",
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestCreateOrderComputesExactTotal(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Pallet jack", "9.99", 10)

	order, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.True(t, order.OrderActive)
	assert.True(t, order.OrderTotal.Equal(decimal.RequireFromString("19.98")),
		"expected 19.98, got %s", order.OrderTotal)

	var stored models.Order
	require.NoError(t, db.Preload("OrderInfo").Preload("OrderItems").First(&stored, order.ID).Error)
	assert.True(t, stored.OrderTotal.Equal(decimal.RequireFromString("19.98")))
	assert.Equal(t, "A", stored.OrderInfo.BuyerName)
	require.Len(t, stored.OrderItems, 1)
	assert.Equal(t, uint(2), stored.OrderItems[0].Quantity)

	var storedItem models.Item
	require.NoError(t, db.First(&storedItem, item.ID).Error)
	assert.Equal(t, uint(8), storedItem.Stock)
}

func TestCreateOrderMultipleLines(t *testing.T) {
	db := newTestDB(t)
	first := seedItem(t, db, "Forklift tyre", "120.50", 4)
	second := seedItem(t, db, "Strap", "3.25", 100)

	order, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items: []OrderItemRequest{
			{ItemID: first.ID, Quantity: 2},
			{ItemID: second.ID, Quantity: 3},
		},
	}, nil)
	require.NoError(t, err)

	// 2*120.50 + 3*3.25 = 250.75
	assert.True(t, order.OrderTotal.Equal(decimal.RequireFromString("250.75")),
		"expected 250.75, got %s", order.OrderTotal)
	assert.Equal(t, int64(2), countRows(t, db, &models.OrderItem{}))
}

func TestCreateOrderRejectsMissingOrderInfo(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)

	_, err := CreateOrder(db, &OrderRequest{
		Items: []OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr, "order_info")
	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "At least one item is required to create an order.", validationErr["items"])
	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.OrderInfo{}))
}

func TestCreateOrderRejectsMissingBuyerFields(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)

	_, err := CreateOrder(db, &OrderRequest{
		OrderInfo: &OrderInfoRequest{BuyerName: "A"},
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr, "buyer_email")
	assert.Contains(t, validationErr, "buyer_phone")
	assert.Contains(t, validationErr, "buyer_address")
	assert.NotContains(t, validationErr, "buyer_name")
}

func TestCreateOrderRollsBackOnUnknownItem(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)

	_, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items: []OrderItemRequest{
			{ItemID: item.ID, Quantity: 2},
			{ItemID: 99999, Quantity: 1},
		},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr["items"], "99999")

	// The whole transaction must be gone, including the stock decrement of
	// the valid first line.
	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.OrderInfo{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.OrderItem{}))

	var storedItem models.Item
	require.NoError(t, db.First(&storedItem, item.ID).Error)
	assert.Equal(t, uint(10), storedItem.Stock)
}

func TestCreateOrderRejectsInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 1)

	_, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr["items"], "Insufficient stock")

	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
	var storedItem models.Item
	require.NoError(t, db.First(&storedItem, item.ID).Error)
	assert.Equal(t, uint(1), storedItem.Stock)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)

	_, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 0}},
	}, nil)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr, "items")
	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
}

func TestCreateOrderSnapshotsUnitPrice(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)

	order, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)

	// A later catalog price change must not leak into the stored order.
	require.NoError(t, db.Model(&models.Item{}).
		Where("id = ?", item.ID).
		Update("item_price", decimal.RequireFromString("999.99")).Error)

	var stored models.Order
	require.NoError(t, db.Preload("OrderItems").First(&stored, order.ID).Error)
	assert.True(t, stored.OrderTotal.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, stored.OrderItems, 1)
	assert.True(t, stored.OrderItems[0].Price.Equal(decimal.RequireFromString("5.00")))
}

func TestCreateOrderAttachesUser(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)
	user := seedUser(t, db, "buyer@example.com")

	order, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	}, &user.ID)
	require.NoError(t, err)

	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)
}

func TestRemoveOrderedCartItems(t *testing.T) {
	db := newTestDB(t)
	ordered := seedItem(t, db, "Crate", "5.00", 10)
	kept := seedItem(t, db, "Strap", "1.00", 10)
	user := seedUser(t, db, "buyer@example.com")

	require.NoError(t, SetCartItem(db, user.ID, ordered.ID, 2))
	require.NoError(t, SetCartItem(db, user.ID, kept.ID, 1))

	order, err := CreateOrder(db, &OrderRequest{
		OrderInfo: validOrderInfo(),
		Items:     []OrderItemRequest{{ItemID: ordered.ID, Quantity: 2}},
	}, &user.ID)
	require.NoError(t, err)

	require.NoError(t, removeOrderedCartItems(db, user.ID, order.OrderItems))

	cart, err := GetCart(db, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, kept.ID, cart.CartItems[0].ItemID)
}
