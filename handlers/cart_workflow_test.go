package handlers

import (
	"testing"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cartLines(t *testing.T, db *gorm.DB, userID uint) []models.CartItem {
	t.Helper()
	cart, err := GetCart(db, userID)
	require.NoError(t, err)
	return cart.CartItems
}

func TestSetCartItemUpserts(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)
	user := seedUser(t, db, "buyer@example.com")

	require.NoError(t, SetCartItem(db, user.ID, item.ID, 3))
	lines := cartLines(t, db, user.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(3), lines[0].Quantity)

	// Setting again overwrites, it does not add up.
	require.NoError(t, SetCartItem(db, user.ID, item.ID, 5))
	lines = cartLines(t, db, user.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(5), lines[0].Quantity)
}

func TestSetCartItemZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Crate", "5.00", 10)
	user := seedUser(t, db, "buyer@example.com")

	require.NoError(t, SetCartItem(db, user.ID, item.ID, 3))
	require.NoError(t, SetCartItem(db, user.ID, item.ID, 0))
	assert.Empty(t, cartLines(t, db, user.ID))

	// Removing an absent line stays a no-op.
	require.NoError(t, SetCartItem(db, user.ID, item.ID, 0))
	assert.Empty(t, cartLines(t, db, user.ID))
}

func TestSetCartItemUnknownItem(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")

	err := SetCartItem(db, user.ID, 12345, 1)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr, "item")
	assert.Empty(t, cartLines(t, db, user.ID))
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	first := seedItem(t, db, "Crate", "5.00", 10)
	second := seedItem(t, db, "Strap", "1.00", 10)
	user := seedUser(t, db, "buyer@example.com")

	require.NoError(t, SetCartItem(db, user.ID, first.ID, 2))
	require.NoError(t, SetCartItem(db, user.ID, second.ID, 4))
	require.Len(t, cartLines(t, db, user.ID), 2)

	require.NoError(t, ClearCart(db, user.ID))
	assert.Empty(t, cartLines(t, db, user.ID))

	require.NoError(t, ClearCart(db, user.ID))
	assert.Empty(t, cartLines(t, db, user.ID))
}

func TestGetCartCreatesLazily(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")

	cart, err := GetCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.CartItems)

	again, err := GetCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}
