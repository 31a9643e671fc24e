package pricing

import "pricing-backend/models"

// columnStep is the synthetic per-column escalation (+2% of base per column).
const columnStep = 0.02

// PricingRow is one stay type × meal plan × guest type combination. It is
// derived on every call and never stored.
type PricingRow struct {
	StayTypeID    uint      `json:"stayTypeId"`
	StayTypeName  string    `json:"stayTypeName"`
	MealPlanCode  string    `json:"mealPlanCode"`
	GuestTypeCode string    `json:"guestTypeCode"`
	BasePrices    []float64 `json:"basePrices"`
}

// GenerateGrid expands the catalog into pricing rows, stay types outermost
// and guest types innermost, keeping the order of each input slice.
// BasePrices[c-1] holds column c.
func GenerateGrid(stayTypes []models.StayType, mealPlans []models.MealPlan, guestTypes []models.GuestType, columnCount int) []PricingRow {
	if columnCount < 0 {
		columnCount = 0
	}
	rows := make([]PricingRow, 0, len(stayTypes)*len(mealPlans)*len(guestTypes))
	for _, st := range stayTypes {
		prices := columnPrices(st.BasePrice, columnCount)
		for _, mp := range mealPlans {
			for _, gt := range guestTypes {
				row := PricingRow{
					StayTypeID:    st.ID,
					StayTypeName:  st.Name,
					MealPlanCode:  mp.Code,
					GuestTypeCode: gt.Code,
					BasePrices:    make([]float64, columnCount),
				}
				copy(row.BasePrices, prices)
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func columnPrices(base float64, columnCount int) []float64 {
	prices := make([]float64, columnCount)
	for col := 1; col <= columnCount; col++ {
		prices[col-1] = base + base*(float64(col)*columnStep)
	}
	return prices
}
