package models

import (
	"time"

	"gorm.io/gorm"
)

// StayType is a sellable room/stay category with its catalog base price.
type StayType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string  `gorm:"size:150" json:"name"`
	BasePrice float64 `gorm:"column:base_price" json:"basePrice"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
