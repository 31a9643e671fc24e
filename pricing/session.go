package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

type AdjustmentKind string

const (
	KindPercentage AdjustmentKind = "percentage"
	KindAmount     AdjustmentKind = "amount"
)

const maxPreviewPercent = 100

// AdjustmentParameters is what the user stages before pressing Apply.
// A nil pointer or empty CustomPercent means "not set".
type AdjustmentParameters struct {
	Kind          AdjustmentKind `json:"kind"`
	PresetPercent *float64       `json:"presetPercent,omitempty"`
	CustomPercent NumericInput   `json:"customPercent,omitempty"`
	FixedAmount   *float64       `json:"fixedAmount,omitempty"`
	TargetColumn  *int           `json:"targetColumn,omitempty"`
}

// ImpactSummary counts the grid cells an adjustment touches.
type ImpactSummary struct {
	AffectedCombinations int `json:"affectedCombinations"`
	AffectedColumns      int `json:"affectedColumns"`
	TotalCells           int `json:"totalCells"`
}

func (p AdjustmentParameters) IsEmpty() bool {
	return !p.CustomPercent.IsSet() && p.PresetPercent == nil && p.FixedAmount == nil && p.TargetColumn == nil
}

// previewPercent picks the custom percent over the preset. A custom percent
// that is present but unparsable still wins, and contributes nothing.
func (p AdjustmentParameters) previewPercent() (float64, bool) {
	if p.CustomPercent.IsSet() {
		return p.CustomPercent.Float()
	}
	if p.PresetPercent != nil {
		return *p.PresetPercent, true
	}
	return 0, false
}

// Validate checks the staged parameters against a grid of rowCount rows and
// columnCount columns and returns how many cells they would affect.
func (p AdjustmentParameters) Validate(rowCount, columnCount int) (ImpactSummary, error) {
	if p.IsEmpty() {
		return ImpactSummary{}, ErrNoAdjustmentSelected
	}
	if p.CustomPercent.IsSet() {
		v, ok := p.CustomPercent.Float()
		if !ok {
			return ImpactSummary{}, ErrInvalidNumber
		}
		if v < -maxPreviewPercent || v > maxPreviewPercent {
			return ImpactSummary{}, ErrOutOfRange
		}
	}
	if p.TargetColumn != nil && (*p.TargetColumn < 1 || *p.TargetColumn > columnCount) {
		return ImpactSummary{}, ErrInvalidColumn
	}

	columns := columnCount
	if p.TargetColumn != nil {
		columns = 1
	}
	return ImpactSummary{
		AffectedCombinations: rowCount,
		AffectedColumns:      columns,
		TotalCells:           rowCount * columns,
	}, nil
}

// describe renders the staged adjustment, e.g. "+10%, +50 on column 3".
func (p AdjustmentParameters) describe() string {
	var parts []string
	if pct, ok := p.previewPercent(); ok {
		parts = append(parts, signed(pct)+"%")
	}
	if p.Kind == KindAmount && p.FixedAmount != nil {
		parts = append(parts, signed(*p.FixedAmount))
	}
	desc := strings.Join(parts, ", ")
	if p.TargetColumn != nil {
		if desc == "" {
			return fmt.Sprintf("column %d highlighted", *p.TargetColumn)
		}
		desc += fmt.Sprintf(" on column %d", *p.TargetColumn)
	}
	if desc == "" {
		desc = "no change"
	}
	return desc
}

func signed(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 0 {
		return "+" + s
	}
	return s
}

// Session is the single editor's staged adjustment. It only previews;
// nothing it does reaches the channel registry.
type Session struct {
	Params AdjustmentParameters `json:"params"`
}

func (s *Session) Stage(p AdjustmentParameters) {
	s.Params = p
}

// Cancel clears every staged field.
func (s *Session) Cancel() {
	s.Params = AdjustmentParameters{}
}

// Apply validates the staged parameters and reports their impact for the
// active tab. On success the session is cleared; on failure it is left as is.
// The adjustment itself is not persisted anywhere.
func (s *Session) Apply(rowCount, columnCount int, tabLabel string) (ImpactSummary, Feedback) {
	impact, err := s.Params.Validate(rowCount, columnCount)
	if err != nil {
		return ImpactSummary{}, Failure(err)
	}
	msg := fmt.Sprintf("Adjustment %s applied to %s channels: %d combinations × %d columns (%d cells).",
		s.Params.describe(), tabLabel, impact.AffectedCombinations, impact.AffectedColumns, impact.TotalCells)
	s.Cancel()
	return impact, Success(msg)
}
