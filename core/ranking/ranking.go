// Package ranking orders priced bundles and reduces per-product pricing
// results to the reporting summaries.
package ranking

import (
	"sort"

	"combo-pricing/core/types"
	"combo-pricing/internal/errors"
)

// Sort orders bundles by the selected key. The sort is stable: ties keep
// their enumeration order, since no secondary key is defined.
func Sort(bundles []types.PricedBundle, key types.SortKey) {
	less := lessFunc(key)
	sort.SliceStable(bundles, func(i, j int) bool {
		return less(bundles[i], bundles[j])
	})
}

func lessFunc(key types.SortKey) func(a, b types.PricedBundle) bool {
	switch key {
	case types.SortMinFinalPrice:
		return func(a, b types.PricedBundle) bool { return a.FinalPrice < b.FinalPrice }
	case types.SortMaxBaseFee:
		return func(a, b types.PricedBundle) bool { return a.BaseFee > b.BaseFee }
	default: // SortMaxDiscount
		return func(a, b types.PricedBundle) bool { return a.DiscountTotal > b.DiscountTotal }
	}
}

// DedupeByProduct collapses a sorted slice to the first (best-ranked)
// bundle per combined product, preserving order.
func DedupeByProduct(sorted []types.PricedBundle) []types.PricedBundle {
	seen := make(map[string]bool, len(sorted))
	out := sorted[:0:0]
	for _, b := range sorted {
		if seen[b.ProductID] {
			continue
		}
		seen[b.ProductID] = true
		out = append(out, b)
	}
	return out
}

// Truncate returns at most limit results; limit <= 0 means no truncation
func Truncate(bundles []types.PricedBundle, limit int) []types.PricedBundle {
	if limit <= 0 || len(bundles) <= limit {
		return bundles
	}
	return bundles[:limit]
}

func summarize(b types.PricedBundle) *types.ProductSummary {
	return &types.ProductSummary{
		ProductID:     b.ProductID,
		ProductName:   b.ProductName,
		CompanyName:   b.CompanyName,
		PlanNames:     b.PlanNames(),
		BaseFee:       b.BaseFee,
		DiscountTotal: b.DiscountTotal,
		FinalPrice:    b.FinalPrice,
	}
}

// TopByDiscount returns the product with the largest total discount.
// pricings holds one priced result per product.
func TopByDiscount(pricings []types.PricedBundle) (*types.ProductSummary, error) {
	if len(pricings) == 0 {
		return nil, errors.EmptyCatalog("no combined products in the catalog")
	}
	best := pricings[0]
	for _, p := range pricings[1:] {
		if p.DiscountTotal > best.DiscountTotal {
			best = p
		}
	}
	return summarize(best), nil
}

// CheapestFinalPrice returns the product with the lowest final price,
// restricted to strictly positive final prices.
func CheapestFinalPrice(pricings []types.PricedBundle) (*types.ProductSummary, error) {
	if len(pricings) == 0 {
		return nil, errors.EmptyCatalog("no combined products in the catalog")
	}
	var best *types.PricedBundle
	for i := range pricings {
		p := &pricings[i]
		if p.FinalPrice <= 0 {
			continue
		}
		if best == nil || p.FinalPrice < best.FinalPrice {
			best = p
		}
	}
	if best == nil {
		return nil, errors.EmptyCatalog("no combined product has a positive final price")
	}
	return summarize(*best), nil
}

// HighestBaseFee returns the product with the largest pre-discount fee
func HighestBaseFee(pricings []types.PricedBundle) (*types.ProductSummary, error) {
	if len(pricings) == 0 {
		return nil, errors.EmptyCatalog("no combined products in the catalog")
	}
	best := pricings[0]
	for _, p := range pricings[1:] {
		if p.BaseFee > best.BaseFee {
			best = p
		}
	}
	return summarize(best), nil
}
