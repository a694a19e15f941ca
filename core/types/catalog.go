// Package types - Catalog records as read by the pricing core
package types

// PlanRecord is an eligible service plan as seen by the enumerator: the plan
// itself plus the eligibility attributes tying it to one combined product.
type PlanRecord struct {
	// ID is the content-derived plan identifier
	ID string `json:"id"`

	// CompanyID is the owning company
	CompanyID int64 `json:"company_id"`

	// Name is the display name; (company, service type, name) is unique
	Name string `json:"name"`

	// Type is the plan's service type
	Type ServiceType `json:"service_type"`

	// Fee is the monthly fee in the smallest currency unit
	Fee int64 `json:"fee"`

	// MinLines is the minimum occurrences when the plan participates
	MinLines int `json:"min_lines"`

	// MaxLines caps occurrences of this plan within one bundle; nil = uncapped
	MaxLines *int `json:"max_lines,omitempty"`

	// BaseRole tags functionally distinct lines (e.g., an anchor plan)
	BaseRole string `json:"base_role,omitempty"`
}

// ProductRecord is a combined product with its cardinality bounds
type ProductRecord struct {
	// ID is the content-derived product identifier
	ID string `json:"id"`

	// Name is the product display name
	Name string `json:"name"`

	// CompanyID and CompanyName identify the owning company
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`

	// Description is the product summary or catchphrase
	Description string `json:"description,omitempty"`

	// Bounds holds the per-service-type line bounds
	Bounds BundleBounds `json:"bounds"`

	// RequiredRoles maps base role -> minimum line count for a valid bundle
	RequiredRoles map[string]int `json:"required_roles,omitempty"`

	// JoinCondition is the free-text join condition
	JoinCondition string `json:"join_condition,omitempty"`

	// ApplicantScope describes who may subscribe
	ApplicantScope string `json:"applicant_scope,omitempty"`

	// ApplicationChannel describes where to subscribe
	ApplicationChannel string `json:"application_channel,omitempty"`

	// URL is the product detail page
	URL string `json:"url,omitempty"`

	// Available marks the product as currently offered
	Available bool `json:"available"`
}

// DiscountClass classifies a discount by the condition kinds it carries
type DiscountClass string

const (
	// ClassUnconditional - no condition rows; the nominal value stands alone
	ClassUnconditional DiscountClass = "unconditional"
	// ClassByPlan - only plan-based conditions
	ClassByPlan DiscountClass = "by_plan"
	// ClassByLineCount - only line-count conditions
	ClassByLineCount DiscountClass = "by_line_count"
	// ClassMixed - both condition kinds present
	ClassMixed DiscountClass = "mixed"
)

// DiscountRecord is a discount declared for one combined product, together
// with its plan- and line-count-override conditions.
type DiscountRecord struct {
	// ID is the content-derived discount identifier
	ID string `json:"id"`

	// ProductID is the owning combined product
	ProductID string `json:"combined_product_id"`

	// Name is the discount display name
	Name string `json:"discount_name,omitempty"`

	// Type is Amount or Percentage
	Type DiscountType `json:"discount_type"`

	// Value is the nominal discount value; a fallback, not authoritative
	// for an exact bundle
	Value int64 `json:"discount_value"`

	// Unit interprets Value (KRW or %)
	Unit Unit `json:"unit"`

	// AppliesTo restricts the discount to lines of these service types;
	// empty means every line is applicable
	AppliesTo []ServiceType `json:"applies_to_service_type,omitempty"`

	// LineSequence is the free-text line-sequence policy (e.g. "2nd_onwards").
	// Metadata only; positional gating is expressed by line-count conditions.
	LineSequence string `json:"applies_to_line_sequence,omitempty"`

	// Note carries free-text remarks
	Note string `json:"note,omitempty"`

	// PlanConditions are the per-plan override rows
	PlanConditions []PlanCondition `json:"plan_conditions,omitempty"`

	// LineCountConditions are the per-line-position override rows
	LineCountConditions []LineCountCondition `json:"line_count_conditions,omitempty"`
}

// AppliesToLine reports whether a line of service type t is applicable
func (d DiscountRecord) AppliesToLine(t ServiceType) bool {
	if len(d.AppliesTo) == 0 {
		return true
	}
	for _, st := range d.AppliesTo {
		if st == t {
			return true
		}
	}
	return false
}

// Classification returns the discount's condition classification
func (d DiscountRecord) Classification() DiscountClass {
	switch {
	case len(d.PlanConditions) > 0 && len(d.LineCountConditions) > 0:
		return ClassMixed
	case len(d.PlanConditions) > 0:
		return ClassByPlan
	case len(d.LineCountConditions) > 0:
		return ClassByLineCount
	default:
		return ClassUnconditional
	}
}

// PlanCondition ties a discount to a specific plan (and optionally a base
// role) with an optional override that supersedes the discount's default.
type PlanCondition struct {
	// PlanID is the service plan this condition matches
	PlanID string `json:"service_plan_id"`

	// BaseRole narrows the match to lines with this base role; empty
	// matches any role. At most one active row per (discount, plan, role).
	BaseRole string `json:"base_role,omitempty"`

	// ConditionText is a free-text qualifier (e.g. "에센스 이상")
	ConditionText string `json:"condition_text,omitempty"`

	// OverrideValue replaces the discount's nominal value; nil = no override
	OverrideValue *int64 `json:"override_discount_value,omitempty"`

	// OverrideUnit replaces the discount's unit; empty = inherit
	OverrideUnit Unit `json:"override_unit,omitempty"`
}

// LineCountCondition ties a discount to a range of line positions
// (1-based within the discount's applicable lines).
type LineCountCondition struct {
	// MinLine is the first applicable line position
	MinLine int `json:"min_applicable_lines"`

	// MaxLine is the last applicable position; nil = open-ended
	MaxLine *int `json:"max_applicable_lines,omitempty"`

	// OverrideValue replaces the discount's nominal value; nil = no override
	OverrideValue *int64 `json:"override_discount_value,omitempty"`

	// OverrideUnit replaces the discount's unit; empty = inherit
	OverrideUnit Unit `json:"override_unit,omitempty"`

	// PerLine applies the value once per covered line; false = lump sum
	PerLine bool `json:"applies_per_line"`
}

// Covers reports whether the 1-based position falls in the condition's range
func (c LineCountCondition) Covers(position int) bool {
	if position < c.MinLine {
		return false
	}
	if c.MaxLine != nil && position > *c.MaxLine {
		return false
	}
	return true
}
