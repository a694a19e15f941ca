// Package enumerate builds every admissible bundle for a combined product:
// per-service-type combinations with replacement within validated line
// bounds, crossed over the service types, then filtered.
package enumerate

import (
	"combo-pricing/core/types"
	"combo-pricing/internal/errors"
)

const (
	// DefaultMaxLinesPerType clamps a missing per-type max bound
	DefaultMaxLinesPerType = 5

	// DefaultMaxBundles is the fail-fast ceiling on bundles per product
	DefaultMaxBundles = 100000
)

// RequireMode selects the required-plan filter semantics
type RequireMode int

const (
	// RequireAny keeps bundles containing at least one of the named plans
	RequireAny RequireMode = iota

	// RequireAll keeps bundles containing every named plan
	RequireAll
)

// Filter restricts the enumerated bundles before they are priced
type Filter struct {
	// PlanNames is the required-plan set; empty disables the filter
	PlanNames []string

	// Mode selects any-of (default) or all-of semantics for PlanNames
	Mode RequireMode

	// RequiredRoles maps base role -> minimum line count
	RequiredRoles map[string]int
}

// Enumerator generates bundles under explicit ceilings
type Enumerator struct {
	// MaxLinesPerType replaces a nil per-type max bound
	MaxLinesPerType int

	// MaxBundles caps the cross-product size; exceeding it is a
	// LIMIT_EXCEEDED error rather than unbounded memory use
	MaxBundles int
}

// New creates an enumerator; zero arguments fall back to the defaults
func New(maxLinesPerType, maxBundles int) *Enumerator {
	if maxLinesPerType <= 0 {
		maxLinesPerType = DefaultMaxLinesPerType
	}
	if maxBundles <= 0 {
		maxBundles = DefaultMaxBundles
	}
	return &Enumerator{
		MaxLinesPerType: maxLinesPerType,
		MaxBundles:      maxBundles,
	}
}

// Bundles enumerates every admissible bundle for one product.
//
// A service type with zero eligible plans and min > 0 contributes no
// combinations, so the result is empty — expected, not an error. A type
// with min = max = 0 contributes the single empty multiset (type absent
// from the bundle). The fully empty bundle is never returned.
func (e *Enumerator) Bundles(productID string, bounds types.BundleBounds,
	plans map[types.ServiceType][]types.PlanRecord, filter Filter) ([]types.Bundle, error) {

	perType := make([][][]types.PlanRecord, 0, 3)
	total := 1
	for _, st := range types.AllServiceTypes() {
		lb := bounds.For(st)
		min, max, err := e.effectiveBounds(st, lb)
		if err != nil {
			return nil, err
		}

		// The ceiling binds generation itself: wide explicit bounds must
		// surface as LIMIT_EXCEEDED, not as memory exhaustion.
		combos, ok := typeCombinations(plans[st], min, max, e.MaxBundles)
		if !ok {
			return nil, errors.LimitExceeded(e.MaxBundles).
				WithContext("combined_product_id", productID).
				WithContext("service_type", st.String())
		}
		if len(combos) == 0 {
			// min > 0 with no eligible plans: the whole product yields nothing
			return nil, nil
		}
		perType = append(perType, combos)

		total *= len(combos)
		if total > e.MaxBundles {
			return nil, errors.LimitExceeded(e.MaxBundles).
				WithContext("combined_product_id", productID)
		}
	}

	bundles := make([]types.Bundle, 0, total)
	cross(perType, nil, func(lines []types.PlanRecord) {
		if len(lines) == 0 {
			return
		}
		if !filter.admits(lines) {
			return
		}
		bundle := types.Bundle{ProductID: productID, Plans: make([]types.PlanRecord, len(lines))}
		copy(bundle.Plans, lines)
		bundles = append(bundles, bundle)
	})
	return bundles, nil
}

// effectiveBounds validates one type's bounds and clamps a missing max
func (e *Enumerator) effectiveBounds(st types.ServiceType, lb types.LineBounds) (int, int, error) {
	if lb.Min < 0 {
		return 0, 0, errors.InvalidBounds(st.String(), lb.Min, -1)
	}
	max := e.MaxLinesPerType
	if lb.Max != nil {
		max = *lb.Max
	}
	if max < 0 || max < lb.Min {
		return 0, 0, errors.InvalidBounds(st.String(), lb.Min, max)
	}
	return lb.Min, max, nil
}

// typeCombinations generates every multiset of eligible plans with size in
// [min, max] as combinations with replacement (a product may allow two
// lines on the same plan), in the order of the eligible-plan list, honoring
// per-plan occurrence bounds from the eligibility edge. Generation stops
// and reports !ok as soon as more than limit multisets have been walked,
// before any unbounded slice is built.
func typeCombinations(plans []types.PlanRecord, min, max, limit int) ([][]types.PlanRecord, bool) {
	var combos [][]types.PlanRecord
	generated := 0
	current := make([]types.PlanRecord, 0, max)

	var walk func(start, remaining int) bool
	walk = func(start, remaining int) bool {
		if remaining == 0 {
			generated++
			if generated > limit {
				return false
			}
			if occurrencesAdmissible(current) {
				combo := make([]types.PlanRecord, len(current))
				copy(combo, current)
				combos = append(combos, combo)
			}
			return true
		}
		for i := start; i < len(plans); i++ {
			current = append(current, plans[i])
			ok := walk(i, remaining-1)
			current = current[:len(current)-1]
			if !ok {
				return false
			}
		}
		return true
	}

	for r := min; r <= max; r++ {
		if r == 0 {
			// the single empty multiset: the type absent from the bundle
			generated++
			combos = append(combos, nil)
			continue
		}
		if len(plans) == 0 {
			break
		}
		if !walk(0, r) {
			return nil, false
		}
	}
	return combos, true
}

// occurrencesAdmissible enforces each plan's own min/max line bounds
func occurrencesAdmissible(combo []types.PlanRecord) bool {
	counts := make(map[string]int, len(combo))
	byKey := make(map[string]types.PlanRecord, len(combo))
	for _, p := range combo {
		key := p.ID + "|" + p.BaseRole
		counts[key]++
		byKey[key] = p
	}
	for key, n := range counts {
		p := byKey[key]
		if n < p.MinLines {
			return false
		}
		if p.MaxLines != nil && n > *p.MaxLines {
			return false
		}
	}
	return true
}

// cross walks the cartesian product of the per-type combination lists,
// invoking emit with each flattened line list.
func cross(perType [][][]types.PlanRecord, prefix []types.PlanRecord, emit func([]types.PlanRecord)) {
	if len(perType) == 0 {
		emit(prefix)
		return
	}
	for _, combo := range perType[0] {
		next := make([]types.PlanRecord, 0, len(prefix)+len(combo))
		next = append(next, prefix...)
		next = append(next, combo...)
		cross(perType[1:], next, emit)
	}
}

// admits applies the required-plan and required-role filters
func (f Filter) admits(lines []types.PlanRecord) bool {
	if len(f.PlanNames) > 0 {
		present := make(map[string]bool, len(lines))
		for _, p := range lines {
			present[p.Name] = true
		}
		switch f.Mode {
		case RequireAll:
			for _, name := range f.PlanNames {
				if !present[name] {
					return false
				}
			}
		default: // RequireAny
			found := false
			for _, name := range f.PlanNames {
				if present[name] {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	for role, required := range f.RequiredRoles {
		n := 0
		for _, p := range lines {
			if p.BaseRole == role {
				n++
			}
		}
		if n < required {
			return false
		}
	}
	return true
}
