package pricing

import "errors"

// Validation errors. None of them is fatal and none leaves state mutated.
var (
	ErrNoAdjustmentSelected = errors.New("no_adjustment_selected")
	ErrInvalidNumber        = errors.New("invalid_number")
	ErrOutOfRange           = errors.New("out_of_range")
	ErrInvalidColumn        = errors.New("invalid_column")

	ErrEmptySelection    = errors.New("empty_selection")
	ErrNoChannelSelected = errors.New("no_channel_selected")
	ErrInvalidPercentage = errors.New("invalid_percentage")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrUnknownScope      = errors.New("unknown_scope")
	ErrUnknownOperation  = errors.New("unknown_operation")
	ErrUnknownKind       = errors.New("unknown_kind")

	ErrDuplicateTab     = errors.New("duplicate_tab")
	ErrBuiltInTab       = errors.New("built_in_tab")
	ErrTabNotFound      = errors.New("tab_not_found")
	ErrEmptyTabLabel    = errors.New("empty_tab_label")
	ErrChannelNotFound  = errors.New("channel_not_found")
	ErrEmptyChannelName = errors.New("empty_channel_name")
	ErrInvalidStatus    = errors.New("invalid_status")

	ErrInvalidStayType = errors.New("invalid_stay_type")
)

var messages = map[error]string{
	ErrNoAdjustmentSelected: "Please select a percentage, an amount or a column to adjust.",
	ErrInvalidNumber:        "Please enter a valid number.",
	ErrOutOfRange:           "Percentage must be between -100 and 100.",
	ErrInvalidColumn:        "Selected column is outside the grid.",
	ErrEmptySelection:       "Please select at least one channel.",
	ErrNoChannelSelected:    "Please select a channel.",
	ErrInvalidPercentage:    "Please enter a valid, non-zero percentage.",
	ErrInvalidAmount:        "Please enter a valid, non-zero amount.",
	ErrUnknownScope:         "Unknown adjustment scope.",
	ErrUnknownOperation:     "Unknown adjustment operation.",
	ErrUnknownKind:          "Adjustment kind must be percentage or fixed.",
	ErrDuplicateTab:         "A channel type with this name already exists.",
	ErrBuiltInTab:           "Built-in channel types cannot be removed.",
	ErrTabNotFound:          "Channel type not found.",
	ErrEmptyTabLabel:        "Channel type name is required.",
	ErrChannelNotFound:      "Channel not found.",
	ErrEmptyChannelName:     "Channel name is required.",
	ErrInvalidStatus:        "Status must be active or inactive.",
	ErrInvalidStayType:      "Stay type needs a name and a non-negative base price.",
}

// Message returns the user-facing text for err. Wrapped validation errors
// resolve to their sentinel's text; anything else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}

// IsValidation reports whether err is one of the recoverable validation errors.
func IsValidation(err error) bool {
	for sentinel := range messages {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
