package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pricing-backend/models"
)

var DB *gorm.DB

func floatPtr(v float64) *float64 { return &v }

// SeedDatabase fills an empty catalog and channel registry with the
// built-in tabs and a starter set of stay types, meal plans and channels.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Channel tabs ----------------
	for _, tab := range models.BuiltInTabs() {
		var existing models.ChannelTab
		err := db.Where("tab_key = ?", tab.Key).First(&existing).Error
		if err == nil {
			if !existing.IsBuiltIn {
				if err := db.Model(&existing).Update("is_built_in", true).Error; err != nil {
					log.Printf("warning: failed to flag tab %s as built-in: %v", tab.Key, err)
				}
			}
			continue
		}
		t := tab
		if err := db.Create(&t).Error; err != nil {
			log.Printf("warning: failed to create tab %s: %v", tab.Key, err)
		}
	}
	log.Println("Channel tabs ensured")

	// ---------------- StayTypes ----------------
	var stCount int64
	db.Model(&models.StayType{}).Count(&stCount)
	if stCount == 0 {
		stayTypes := []models.StayType{
			{Name: "Standard", BasePrice: 8000},
			{Name: "Superior", BasePrice: 10000},
			{Name: "Deluxe", BasePrice: 12500},
			{Name: "Family Suite", BasePrice: 18000},
		}
		if err := db.Create(&stayTypes).Error; err != nil {
			log.Printf("warning: failed to seed stay types: %v", err)
		} else {
			log.Println("StayTypes seeded")
		}
	}

	// ---------------- MealPlans ----------------
	var mpCount int64
	db.Model(&models.MealPlan{}).Count(&mpCount)
	if mpCount == 0 {
		plans := []models.MealPlan{
			{Code: "RO", Name: "Room Only"},
			{Code: "BB", Name: "Bed & Breakfast", PerPersonRate: floatPtr(1500)},
			{Code: "HB", Name: "Half Board", PerPersonRate: floatPtr(3500)},
			{Code: "FB", Name: "Full Board", PerRoomRate: floatPtr(6000), PerPersonRate: floatPtr(5000)},
		}
		if err := db.Create(&plans).Error; err != nil {
			log.Printf("warning: failed to seed meal plans: %v", err)
		} else {
			log.Println("MealPlans seeded")
		}
	}

	// ---------------- Channels ----------------
	var chCount int64
	db.Model(&models.Channel{}).Count(&chCount)
	if chCount == 0 {
		channels := []models.Channel{
			{Name: "Front Desk", Type: models.ChannelTypeWalkIn, TabKey: models.TabDirect},
			{Name: "Hotel Website", Type: models.ChannelTypeDirect, TabKey: models.TabWeb},
			{Name: "Booking.com", Type: models.ChannelTypeOTA, TabKey: models.TabOTA, PriceModifierPercent: 15},
			{Name: "Expedia", Type: models.ChannelTypeOTA, TabKey: models.TabOTA, PriceModifierPercent: 18},
			{Name: "Local Travel Agent", Type: models.ChannelTypeAgent, TabKey: models.TabTA, PriceModifierPercent: -10},
		}
		for i := range channels {
			channels[i].ID = uuid.NewString()
			channels[i].Status = models.ChannelStatusActive
		}
		if err := db.Create(&channels).Error; err != nil {
			log.Printf("warning: failed to seed channels: %v", err)
		} else {
			log.Println("Channels seeded")
		}
	}
}

// AutoMigrate creates or updates the pricing tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.StayType{},
		&models.MealPlan{},
		&models.ChannelTab{},
		&models.Channel{},
	)
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "pricing_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := AutoMigrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}
