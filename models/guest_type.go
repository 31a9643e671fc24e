package models

// GuestType is not stored; the set is fixed.
type GuestType struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var DefaultGuestTypes = []GuestType{
	{Code: "AO", Name: "Adult Only", Icon: "👤"},
	{Code: "AC", Name: "Adult + Child", Icon: "👨‍👧"},
}
