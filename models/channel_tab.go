package models

const (
	TabDirect = "DIRECT"
	TabWeb    = "WEB"
	TabOTA    = "OTA"
	TabTA     = "TA"
)

// ChannelTab groups channels by type. Built-in tabs cannot be removed.
type ChannelTab struct {
	Key       string `gorm:"column:tab_key;primaryKey;size:64" json:"key"`
	Label     string `gorm:"size:150" json:"label"`
	IsBuiltIn bool   `gorm:"column:is_built_in;default:false" json:"isBuiltIn"`
	Position  int    `gorm:"column:position" json:"position"`
}

func BuiltInTabs() []ChannelTab {
	return []ChannelTab{
		{Key: TabDirect, Label: "Direct", IsBuiltIn: true, Position: 0},
		{Key: TabWeb, Label: "Web", IsBuiltIn: true, Position: 1},
		{Key: TabOTA, Label: "OTA", IsBuiltIn: true, Position: 2},
		{Key: TabTA, Label: "Travel Agent", IsBuiltIn: true, Position: 3},
	}
}
