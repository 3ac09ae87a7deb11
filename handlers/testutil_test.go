package handlers

import (
	"fmt"
	"testing"

	"github.com/dhbw-wi22a/B2B-Backend/config"
	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func itoa(id uint) string {
	return fmt.Sprint(id)
}

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.MigrateModels(db))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, name string, price string, stock uint) models.Item {
	t.Helper()

	item := models.Item{
		ItemDetails: models.ItemDetails{
			ItemName: name,
		},
		ItemPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "irrelevant-hash",
		Role:     models.RoleMember,
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
