// Package types - Priced results produced by the aggregation core
package types

// Bundle is one admissible combination of plans for a combined product.
// Lines are ordered by service type (Mobile, Internet, TV) and, within a
// type, by the enumeration order of the eligible plans.
type Bundle struct {
	// ProductID is the combined product this bundle belongs to
	ProductID string `json:"combined_product_id"`

	// Plans is the flat plan list; a plan may appear more than once
	Plans []PlanRecord `json:"plans"`
}

// PricedBundle is a bundle with its computed pricing
type PricedBundle struct {
	// ProductID, ProductName, CompanyName identify the combined product
	ProductID   string `json:"combined_product_id"`
	ProductName string `json:"combined_product_name"`
	CompanyName string `json:"company_name"`

	// Plans is the flat plan list of the underlying bundle
	Plans []PlanRecord `json:"associated_plans"`

	// BaseFee is the sum of plan fees, once per occurrence
	BaseFee int64 `json:"total_base_fee"`

	// DiscountTotal is the sum of applicable discounts
	DiscountTotal int64 `json:"total_discount_amount"`

	// FinalPrice = BaseFee - DiscountTotal; not floored at zero
	FinalPrice int64 `json:"final_price"`
}

// PlanNames returns the display names of the bundle's plans, in order
func (b PricedBundle) PlanNames() []string {
	names := make([]string, len(b.Plans))
	for i, p := range b.Plans {
		names[i] = p.Name
	}
	return names
}

// ProductSummary is a product-level reporting result
type ProductSummary struct {
	ProductID   string `json:"combined_product_id"`
	ProductName string `json:"combined_product_name"`
	CompanyName string `json:"company_name"`

	// PlanNames lists the plans of the product's representative bundle
	PlanNames []string `json:"associated_plans"`

	BaseFee       int64 `json:"total_base_fee"`
	DiscountTotal int64 `json:"total_discount_amount"`
	FinalPrice    int64 `json:"final_price"`
}

// SortKey selects the ranking order for priced bundles
type SortKey string

const (
	// SortMaxDiscount - largest total discount first
	SortMaxDiscount SortKey = "max_discount"

	// SortMinFinalPrice - cheapest final price first
	SortMinFinalPrice SortKey = "min_final_price"

	// SortMaxBaseFee - most expensive original price first
	SortMaxBaseFee SortKey = "max_base_fee"
)

// Valid reports whether k is a known sort key
func (k SortKey) Valid() bool {
	switch k {
	case SortMaxDiscount, SortMinFinalPrice, SortMaxBaseFee:
		return true
	}
	return false
}
