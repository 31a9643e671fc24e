package models

import "time"

type ChannelType string

const (
	ChannelTypeUnspecified ChannelType = ""
	ChannelTypeDirect      ChannelType = "Direct"
	ChannelTypeOTA         ChannelType = "OTA"
	ChannelTypeAgent       ChannelType = "Agent"
	ChannelTypeWalkIn      ChannelType = "Walk-in"
	ChannelTypeTravelAgent ChannelType = "Travel Agent"
)

const (
	ChannelStatusActive   = "active"
	ChannelStatusInactive = "inactive"
)

// Channel is a sales outlet. PriceModifierPercent is applied multiplicatively
// to computed prices; it is conventionally within [-100, 100] but not bounded.
type Channel struct {
	ID   string      `gorm:"primaryKey;size:36" json:"id"`
	Name string      `gorm:"size:150" json:"name"`
	Type ChannelType `gorm:"column:type;size:32" json:"type"`

	// TabKey is empty on legacy records; those are grouped by Type instead.
	TabKey               string  `gorm:"column:tab_key;size:64;index" json:"tabKey"`
	PriceModifierPercent float64 `gorm:"column:price_modifier_percent;default:0" json:"priceModifierPercent"`
	Status               string  `gorm:"size:32;default:active" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
