package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericInput keeps a number exactly as the user typed it so that
// non-numeric input can be reported instead of silently dropped.
// It unmarshals from either a JSON string or a JSON number.
type NumericInput string

func (n NumericInput) IsSet() bool {
	return strings.TrimSpace(string(n)) != ""
}

// Float parses the input. ok is false when the input is empty, not a
// number, or not finite.
func (n NumericInput) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericInput(num.String())
	return nil
}

func FromFloat(v float64) NumericInput {
	return NumericInput(strconv.FormatFloat(v, 'f', -1, 64))
}
