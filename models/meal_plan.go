package models

import "time"

type MealPlan struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:16;uniqueIndex" json:"code"`
	Name string `gorm:"size:150" json:"name"`

	// PerRoomRate wins over PerPersonRate when both are set.
	PerRoomRate   *float64 `gorm:"column:per_room_rate" json:"perRoomRate,omitempty"`
	PerPersonRate *float64 `gorm:"column:per_person_rate" json:"perPersonRate,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// Addon returns the flat surcharge added to a base price before any adjustment.
func (m MealPlan) Addon() float64 {
	if m.PerRoomRate != nil {
		return *m.PerRoomRate
	}
	if m.PerPersonRate != nil {
		return *m.PerPersonRate
	}
	return 0
}
