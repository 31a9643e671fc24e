package pricing

import "pricing-backend/models"

// Calculator prices a single grid cell. It holds no mutable state; the
// meal plan index is built once from the catalog it was created with.
type Calculator struct {
	mealPlans map[string]models.MealPlan
}

func NewCalculator(mealPlans []models.MealPlan) Calculator {
	idx := make(map[string]models.MealPlan, len(mealPlans))
	for _, mp := range mealPlans {
		idx[mp.Code] = mp
	}
	return Calculator{mealPlans: idx}
}

// CalculatePrice runs the adjustment pipeline in order; every step works on
// the running value:
//
//  1. meal plan addon
//  2. custom percent, or preset percent when no custom percent is set
//  3. fixed amount (Amount kind only)
//  4. target column (no numeric effect)
//  5. channel modifier, skipped when channel is nil
func (c Calculator) CalculatePrice(basePrice float64, mealPlanCode string, params AdjustmentParameters, channel *models.Channel) float64 {
	working := basePrice
	if mp, ok := c.mealPlans[mealPlanCode]; ok {
		working += mp.Addon()
	}

	if pct, ok := params.previewPercent(); ok {
		working *= 1 + pct/100
	}

	if params.Kind == KindAmount && params.FixedAmount != nil {
		working += *params.FixedAmount
	}

	// TargetColumn only marks which column is being previewed.

	if channel != nil {
		working *= 1 + channel.PriceModifierPercent/100
	}
	return working
}
