// Package pricing computes base fee, discount total and final price for a
// bundle against an immutable catalog snapshot. The computation is pure:
// pricing the same bundle twice yields identical results.
package pricing

import (
	"github.com/shopspring/decimal"

	"combo-pricing/core/types"
)

var hundred = decimal.NewFromInt(100)

// Calculator resolves discounts and aggregates bundle pricing
type Calculator struct{}

// NewCalculator creates a stateless pricing calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Price computes the priced result for one bundle.
//
// base fee: each plan's fee counted once per occurrence.
//
// discount total: for every discount of the product and every applicable
// line, exactly one of the following applies, in precedence order:
//  1. a matching plan condition (plan id, and base role when the condition
//     names one) — its override value/unit, falling back to the discount's
//     nominal value when the override value is null;
//  2. a line-count condition covering the line's 1-based position among
//     the discount's applicable lines — per-line conditions apply to each
//     covered line, lump-sum conditions once per bundle;
//  3. the discount's nominal value and unit.
//
// Percentage values are floored: floor(fee * value / 100).
func (c *Calculator) Price(product types.ProductRecord, bundle types.Bundle,
	discounts []types.DiscountRecord) types.PricedBundle {

	var baseFee int64
	for _, p := range bundle.Plans {
		baseFee += p.Fee
	}

	var discountTotal int64
	for _, d := range discounts {
		discountTotal += c.discountAmount(d, bundle.Plans)
	}

	return types.PricedBundle{
		ProductID:     product.ID,
		ProductName:   product.Name,
		CompanyName:   product.CompanyName,
		Plans:         bundle.Plans,
		BaseFee:       baseFee,
		DiscountTotal: discountTotal,
		FinalPrice:    baseFee - discountTotal,
	}
}

// discountAmount sums one discount's contribution over the bundle's lines
func (c *Calculator) discountAmount(d types.DiscountRecord, lines []types.PlanRecord) int64 {
	var total int64
	position := 0
	lumpApplied := make(map[int]bool, len(d.LineCountConditions))

	for _, line := range lines {
		if !d.AppliesToLine(line.Type) {
			continue
		}
		position++

		if cond, ok := matchPlanCondition(d, line); ok {
			total += resolve(d, cond.OverrideValue, cond.OverrideUnit, line.Fee)
			continue
		}

		if idx, ok := matchLineCountCondition(d, position); ok {
			cond := d.LineCountConditions[idx]
			if cond.PerLine {
				total += resolve(d, cond.OverrideValue, cond.OverrideUnit, line.Fee)
			} else if !lumpApplied[idx] {
				lumpApplied[idx] = true
				total += resolve(d, cond.OverrideValue, cond.OverrideUnit, line.Fee)
			}
			continue
		}

		total += resolve(d, nil, "", line.Fee)
	}
	return total
}

// matchPlanCondition finds the plan condition for a line. A condition with
// a base role only matches lines carrying that role; a role-less condition
// matches any line on the plan but yields to a role-specific one.
func matchPlanCondition(d types.DiscountRecord, line types.PlanRecord) (types.PlanCondition, bool) {
	var fallback *types.PlanCondition
	for i := range d.PlanConditions {
		cond := d.PlanConditions[i]
		if cond.PlanID != line.ID {
			continue
		}
		if cond.BaseRole != "" {
			if cond.BaseRole == line.BaseRole {
				return cond, true
			}
			continue
		}
		if fallback == nil {
			fallback = &d.PlanConditions[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return types.PlanCondition{}, false
}

// matchLineCountCondition finds the first condition covering the position
func matchLineCountCondition(d types.DiscountRecord, position int) (int, bool) {
	for i, cond := range d.LineCountConditions {
		if cond.Covers(position) {
			return i, true
		}
	}
	return 0, false
}

// resolve turns an override (or the discount default) into currency units.
// A nil override value is "no override" — a normal data state, not an error.
func resolve(d types.DiscountRecord, override *int64, overrideUnit types.Unit, fee int64) int64 {
	value := d.Value
	unit := d.Unit
	if override != nil {
		value = *override
		if overrideUnit != "" {
			unit = overrideUnit
		}
	}

	if unit == types.UnitPercent {
		return decimal.NewFromInt(fee).
			Mul(decimal.NewFromInt(value)).
			Div(hundred).
			Floor().
			IntPart()
	}
	return value
}
