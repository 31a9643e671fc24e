package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"pricing-backend/models"
)

var ErrInvalidMealPlan = errors.New("invalid_meal_plan")

// CatalogService reads the catalog the pricing grid is generated from.
// It implements pricing.Catalog.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) StayTypes(ctx context.Context) ([]models.StayType, error) {
	var types []models.StayType
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

func (s *CatalogService) StayType(ctx context.Context, id uint) (models.StayType, error) {
	var st models.StayType
	err := s.DB.WithContext(ctx).First(&st, id).Error
	return st, err
}

func (s *CatalogService) MealPlans(ctx context.Context) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}

func (s *CatalogService) GuestTypes() []models.GuestType {
	return append([]models.GuestType(nil), models.DefaultGuestTypes...)
}

// CreateMealPlan stores a meal plan. Codes are upper-cased and unique.
func (s *CatalogService) CreateMealPlan(ctx context.Context, mp *models.MealPlan) error {
	mp.Code = strings.ToUpper(strings.TrimSpace(mp.Code))
	mp.Name = strings.TrimSpace(mp.Name)
	if mp.Code == "" || mp.Name == "" {
		return ErrInvalidMealPlan
	}
	if (mp.PerRoomRate != nil && *mp.PerRoomRate < 0) || (mp.PerPersonRate != nil && *mp.PerPersonRate < 0) {
		return ErrInvalidMealPlan
	}

	err := translateDBError(s.DB.WithContext(ctx).Create(mp).Error)
	if err != nil {
		log.Printf("❌ CatalogService.CreateMealPlan code=%s: %v", mp.Code, err)
	}
	return err
}
