package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pricing-backend/config"
	"pricing-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]models.StayType{
		{Name: "Standard", BasePrice: 1000},
		{Name: "Deluxe", BasePrice: 2000},
	}).Error)
	require.NoError(t, db.Create(&[]models.MealPlan{
		{Code: "RO", Name: "Room Only"},
		{Code: "BB", Name: "Bed & Breakfast", PerRoomRate: floatPtr(100)},
	}).Error)
}

func testSettings() config.PricingSettings {
	return config.PricingSettings{
		ColumnCount:        8,
		ReferenceBasePrice: 10000,
		Currency:           "LKR",
	}
}
