package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"combo-pricing/core/types"
)

func line(id, name string, st types.ServiceType, fee int64) types.PlanRecord {
	return types.PlanRecord{ID: id, Name: name, Type: st, Fee: fee}
}

func int64Ptr(v int64) *int64 { return &v }

var product = types.ProductRecord{
	ID:          "prod",
	Name:        "Family Bundle",
	CompanyName: "skt",
}

func price(t *testing.T, plans []types.PlanRecord, discounts ...types.DiscountRecord) types.PricedBundle {
	t.Helper()
	return NewCalculator().Price(product, types.Bundle{ProductID: "prod", Plans: plans}, discounts)
}

func TestPriceBaseFeeCountsOccurrences(t *testing.T) {
	a := line("a", "A", types.ServiceMobile, 10000)
	got := price(t, []types.PlanRecord{a, a, line("x", "X", types.ServiceInternet, 30000)})

	assert.Equal(t, int64(50000), got.BaseFee)
	assert.Equal(t, int64(0), got.DiscountTotal)
	assert.Equal(t, int64(50000), got.FinalPrice)
}

func TestPriceUnconditionalAmountPerLine(t *testing.T) {
	plans := []types.PlanRecord{
		line("a", "A", types.ServiceMobile, 10000),
		line("b", "B", types.ServiceMobile, 20000),
		line("x", "X", types.ServiceInternet, 30000),
	}
	d := types.DiscountRecord{ID: "d", Value: 1000, Unit: types.UnitKRW, Type: types.DiscountAmount}

	got := price(t, plans, d)
	assert.Equal(t, int64(3000), got.DiscountTotal)
	assert.Equal(t, got.BaseFee-got.DiscountTotal, got.FinalPrice)
}

func TestPricePercentageFloors(t *testing.T) {
	plans := []types.PlanRecord{line("a", "A", types.ServiceMobile, 33333)}
	d := types.DiscountRecord{ID: "d", Value: 10, Unit: types.UnitPercent, Type: types.DiscountPercentage}

	got := price(t, plans, d)
	assert.Equal(t, int64(3333), got.DiscountTotal)
}

func TestPriceAppliesToRestrictsLines(t *testing.T) {
	plans := []types.PlanRecord{
		line("a", "A", types.ServiceMobile, 10000),
		line("x", "X", types.ServiceInternet, 30000),
	}
	d := types.DiscountRecord{
		ID: "d", Value: 1000, Unit: types.UnitKRW,
		AppliesTo: []types.ServiceType{types.ServiceMobile},
	}

	got := price(t, plans, d)
	assert.Equal(t, int64(1000), got.DiscountTotal)
}

func TestPricePlanOverrideWinsOverLineCount(t *testing.T) {
	plans := []types.PlanRecord{
		line("a", "A", types.ServiceMobile, 10000),
		line("b", "B", types.ServiceMobile, 20000),
	}
	d := types.DiscountRecord{
		ID: "d", Value: 100, Unit: types.UnitKRW,
		PlanConditions: []types.PlanCondition{
			{PlanID: "b", OverrideValue: int64Ptr(5000)},
		},
		LineCountConditions: []types.LineCountCondition{
			{MinLine: 1, PerLine: true, OverrideValue: int64Ptr(700)},
		},
	}

	// line a: covered by the line-count condition (700)
	// line b: plan condition takes precedence (5000)
	got := price(t, plans, d)
	assert.Equal(t, int64(5700), got.DiscountTotal)
}

func TestPriceRoleSpecificConditionBeatsRoleless(t *testing.T) {
	anchored := line("a", "A", types.ServiceMobile, 10000)
	anchored.BaseRole = "anchor"
	d := types.DiscountRecord{
		ID: "d", Value: 100, Unit: types.UnitKRW,
		PlanConditions: []types.PlanCondition{
			{PlanID: "a", OverrideValue: int64Ptr(1000)},
			{PlanID: "a", BaseRole: "anchor", OverrideValue: int64Ptr(3000)},
		},
	}

	got := price(t, []types.PlanRecord{anchored}, d)
	assert.Equal(t, int64(3000), got.DiscountTotal)

	// without the role, the role-less row applies
	got = price(t, []types.PlanRecord{line("a", "A", types.ServiceMobile, 10000)}, d)
	assert.Equal(t, int64(1000), got.DiscountTotal)
}

func TestPriceNullOverrideFallsBackToNominal(t *testing.T) {
	plans := []types.PlanRecord{line("a", "A", types.ServiceMobile, 10000)}
	d := types.DiscountRecord{
		ID: "d", Value: 2500, Unit: types.UnitKRW,
		PlanConditions: []types.PlanCondition{
			{PlanID: "a", ConditionText: "프리미엄 이상"},
		},
	}

	got := price(t, plans, d)
	assert.Equal(t, int64(2500), got.DiscountTotal)
}

func TestPriceLineCountPerLineVersusLump(t *testing.T) {
	plans := []types.PlanRecord{
		line("a", "A", types.ServiceMobile, 10000),
		line("a", "A", types.ServiceMobile, 10000),
		line("a", "A", types.ServiceMobile, 10000),
	}

	perLine := types.DiscountRecord{
		ID: "d1", Value: 0, Unit: types.UnitKRW,
		LineCountConditions: []types.LineCountCondition{
			{MinLine: 2, PerLine: true, OverrideValue: int64Ptr(1000)},
		},
	}
	got := price(t, plans, perLine)
	// positions 2 and 3 covered, position 1 falls back to the nominal 0
	assert.Equal(t, int64(2000), got.DiscountTotal)

	lump := types.DiscountRecord{
		ID: "d2", Value: 0, Unit: types.UnitKRW,
		LineCountConditions: []types.LineCountCondition{
			{MinLine: 2, OverrideValue: int64Ptr(1000)},
		},
	}
	got = price(t, plans, lump)
	assert.Equal(t, int64(1000), got.DiscountTotal)
}

func TestPricePositionsCountOnlyApplicableLines(t *testing.T) {
	plans := []types.PlanRecord{
		line("x", "X", types.ServiceInternet, 30000),
		line("a", "A", types.ServiceMobile, 10000),
		line("a", "A", types.ServiceMobile, 10000),
	}
	// mobile-only discount: the internet line does not consume position 1
	d := types.DiscountRecord{
		ID: "d", Value: 0, Unit: types.UnitKRW,
		AppliesTo: []types.ServiceType{types.ServiceMobile},
		LineCountConditions: []types.LineCountCondition{
			{MinLine: 1, MaxLine: types.IntPtr(1), PerLine: true, OverrideValue: int64Ptr(1000)},
		},
	}

	got := price(t, plans, d)
	assert.Equal(t, int64(1000), got.DiscountTotal)
}

func TestPriceOverrideUnitSwitchesToPercent(t *testing.T) {
	plans := []types.PlanRecord{
		line("b", "B", types.ServiceInternet, 20000),
		line("c", "C", types.ServiceTV, 40000),
	}
	d := types.DiscountRecord{
		ID: "d", Value: 0, Unit: types.UnitKRW,
		PlanConditions: []types.PlanCondition{
			{PlanID: "b", OverrideValue: int64Ptr(10), OverrideUnit: types.UnitPercent},
		},
	}

	got := price(t, plans, d)
	assert.Equal(t, int64(60000), got.BaseFee)
	assert.Equal(t, int64(2000), got.DiscountTotal)
	assert.Equal(t, int64(58000), got.FinalPrice)
}

func TestPriceFinalPriceMayGoNegative(t *testing.T) {
	plans := []types.PlanRecord{line("a", "A", types.ServiceMobile, 1000)}
	d := types.DiscountRecord{ID: "d", Value: 5000, Unit: types.UnitKRW}

	got := price(t, plans, d)
	assert.Equal(t, int64(-4000), got.FinalPrice)
}

func TestPriceMultipleDiscountsStack(t *testing.T) {
	plans := []types.PlanRecord{line("a", "A", types.ServiceMobile, 10000)}
	d1 := types.DiscountRecord{ID: "d1", Value: 1000, Unit: types.UnitKRW}
	d2 := types.DiscountRecord{ID: "d2", Value: 10, Unit: types.UnitPercent}

	got := price(t, plans, d1, d2)
	assert.Equal(t, int64(2000), got.DiscountTotal)
}
