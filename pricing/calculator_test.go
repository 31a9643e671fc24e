package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pricing-backend/models"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestCalculatePrice_PipelineOrder(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{
		Kind:          KindAmount,
		CustomPercent: "10",
		FixedAmount:   floatPtr(50),
	}
	channel := &models.Channel{ID: "c1", PriceModifierPercent: 20}

	assert.InDelta(t, 1512.0, calc.CalculatePrice(1000, "BB", params, channel), 1e-9)
	assert.InDelta(t, 1260.0, calc.CalculatePrice(1000, "BB", params, nil), 1e-9)
}

func TestCalculatePrice_CustomWinsOverPreset(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{
		Kind:          KindPercentage,
		CustomPercent: "5",
		PresetPercent: floatPtr(20),
	}

	assert.InDelta(t, 1050.0, calc.CalculatePrice(1000, "RO", params, nil), 1e-9)
}

func TestCalculatePrice_PresetWhenNoCustom(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{PresetPercent: floatPtr(20)}

	assert.InDelta(t, 1200.0, calc.CalculatePrice(1000, "RO", params, nil), 1e-9)
}

func TestCalculatePrice_InvalidCustomStillWins(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{CustomPercent: "abc", PresetPercent: floatPtr(20)}

	assert.InDelta(t, 1000.0, calc.CalculatePrice(1000, "RO", params, nil), 1e-9)
}

func TestCalculatePrice_FixedAmountOnlyForAmountKind(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{Kind: KindPercentage, FixedAmount: floatPtr(50)}

	assert.InDelta(t, 1000.0, calc.CalculatePrice(1000, "RO", params, nil), 1e-9)

	params.Kind = KindAmount
	assert.InDelta(t, 1050.0, calc.CalculatePrice(1000, "RO", params, nil), 1e-9)
}

func TestCalculatePrice_MealPlanAddon(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	none := AdjustmentParameters{}

	assert.InDelta(t, 1000.0, calc.CalculatePrice(1000, "RO", none, nil), 1e-9)
	assert.InDelta(t, 1100.0, calc.CalculatePrice(1000, "BB", none, nil), 1e-9)
	assert.InDelta(t, 1040.0, calc.CalculatePrice(1000, "HB", none, nil), 1e-9)
	assert.InDelta(t, 1000.0, calc.CalculatePrice(1000, "UNKNOWN", none, nil), 1e-9)
}

func TestCalculatePrice_TargetColumnHasNoEffect(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{PresetPercent: floatPtr(10)}
	withColumn := params
	withColumn.TargetColumn = intPtr(3)

	assert.Equal(t,
		calc.CalculatePrice(1000, "BB", params, nil),
		calc.CalculatePrice(1000, "BB", withColumn, nil))
}

func TestCalculatePrice_Deterministic(t *testing.T) {
	calc := NewCalculator(testMealPlans())
	params := AdjustmentParameters{Kind: KindAmount, CustomPercent: "7.5", FixedAmount: floatPtr(12.34)}
	channel := &models.Channel{PriceModifierPercent: -3.3}

	first := calc.CalculatePrice(1234.56, "HB", params, channel)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.CalculatePrice(1234.56, "HB", params, channel))
	}
}

func TestMealPlanAddon_PerRoomWins(t *testing.T) {
	mp := models.MealPlan{PerRoomRate: floatPtr(100), PerPersonRate: floatPtr(40)}
	assert.Equal(t, 100.0, mp.Addon())
	assert.Equal(t, 0.0, models.MealPlan{}.Addon())
}
