// Package models defines the persisted catalog schema. Identifiers for
// plans, products, discounts and benefits are content-derived hashes, so
// re-seeding the same catalog is idempotent.
package models

import (
	"strings"
	"time"

	"combo-pricing/core/types"
)

// Company is an owning telecom company (skt, kt, lguplus, others)
type Company struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Company) TableName() string {
	return "companies"
}

// ServicePlan is one sellable plan; (company, service type, name) is unique
// and its hash is the primary key.
type ServicePlan struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CompanyID   int64     `gorm:"index;not null" json:"company_id"`
	Company     Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Name        string    `gorm:"size:191;not null" json:"name"`
	ServiceType string    `gorm:"size:16;not null" json:"service_type"`
	MonthlyFee  int64     `gorm:"not null" json:"monthly_fee"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name
func (ServicePlan) TableName() string {
	return "service_plans"
}

// CombinedProduct is a bundle offering with per-service-type line bounds.
// Nil max bounds are open-ended and clamped at query time.
type CombinedProduct struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	CompanyID   int64  `gorm:"index;not null" json:"company_id"`
	Company     Company `gorm:"foreignKey:CompanyID" json:"-"`
	Name        string `gorm:"size:191;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	MinMobileLines   int  `gorm:"not null;default:0" json:"min_mobile_lines"`
	MaxMobileLines   *int `json:"max_mobile_lines"`
	MinInternetLines int  `gorm:"not null;default:0" json:"min_internet_lines"`
	MaxInternetLines *int `json:"max_internet_lines"`
	MinTVLines       int  `gorm:"not null;default:0" json:"min_tv_lines"`
	MaxTVLines       *int `json:"max_tv_lines"`

	JoinCondition      string `gorm:"type:text" json:"join_condition"`
	ApplicantScope     string `gorm:"type:text" json:"applicant_scope"`
	ApplicationChannel string `gorm:"type:text" json:"application_channel"`
	URL                string `gorm:"size:512" json:"url"`
	Available          bool   `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (CombinedProduct) TableName() string {
	return "combined_products"
}

// Bounds converts the flattened columns to the core bounds value
func (p CombinedProduct) Bounds() types.BundleBounds {
	return types.BundleBounds{
		Mobile:   types.LineBounds{Min: p.MinMobileLines, Max: p.MaxMobileLines},
		Internet: types.LineBounds{Min: p.MinInternetLines, Max: p.MaxInternetLines},
		TV:       types.LineBounds{Min: p.MinTVLines, Max: p.MaxTVLines},
	}
}

// CombinedProductEligibility links a plan to a product with per-plan
// occurrence bounds and the line's base role.
type CombinedProductEligibility struct {
	CombinedProductID string `gorm:"primaryKey;size:64" json:"combined_product_id"`
	ServicePlanID     string `gorm:"primaryKey;size:64" json:"service_plan_id"`
	BaseRole          string `gorm:"primaryKey;size:64;default:''" json:"base_role"`
	MinLines          int    `gorm:"not null;default:0" json:"min_lines"`
	MaxLines          *int   `gorm:"default:1" json:"max_lines"`
}

// TableName returns the table name
func (CombinedProductEligibility) TableName() string {
	return "combined_product_eligibilities"
}

// RequiredBaseRole states how many lines of a base role a valid bundle
// must carry (e.g. one anchor internet line).
type RequiredBaseRole struct {
	CombinedProductID string `gorm:"primaryKey;size:64" json:"combined_product_id"`
	Role              string `gorm:"primaryKey;size:64" json:"role"`
	RequiredCount     int    `gorm:"not null;default:1" json:"required_count"`
}

// TableName returns the table name
func (RequiredBaseRole) TableName() string {
	return "required_base_roles"
}

// Discount is one discount declared for a combined product. AppliesTo is
// stored as a comma-separated service-type list; empty means every line.
type Discount struct {
	ID                string `gorm:"primaryKey;size:64" json:"id"`
	CombinedProductID string `gorm:"index;not null;size:64" json:"combined_product_id"`
	Name              string `gorm:"size:191" json:"discount_name"`
	DiscountType      string `gorm:"size:16;not null" json:"discount_type"`
	DiscountValue     int64  `gorm:"not null" json:"discount_value"`
	Unit              string `gorm:"size:8;not null" json:"unit"`
	AppliesTo         string `gorm:"column:applies_to_service_type;size:64" json:"applies_to_service_type"`
	LineSequence      string `gorm:"column:applies_to_line_sequence;size:64" json:"applies_to_line_sequence"`
	Note              string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Discount) TableName() string {
	return "discounts"
}

// AppliesToTypes parses the comma-separated service-type column
func (d Discount) AppliesToTypes() []types.ServiceType {
	if d.AppliesTo == "" {
		return nil
	}
	parts := strings.Split(d.AppliesTo, ",")
	out := make([]types.ServiceType, 0, len(parts))
	for _, p := range parts {
		st := types.ServiceType(strings.TrimSpace(p))
		if st.Valid() {
			out = append(out, st)
		}
	}
	return out
}

// JoinServiceTypes renders a service-type list for the AppliesTo column
func JoinServiceTypes(sts []types.ServiceType) string {
	names := make([]string, len(sts))
	for i, st := range sts {
		names[i] = st.String()
	}
	return strings.Join(names, ",")
}

// DiscountConditionByPlan is a plan-specific override row. A null override
// value means "condition applies, amount unchanged".
type DiscountConditionByPlan struct {
	DiscountID    string `gorm:"primaryKey;size:64" json:"discount_id"`
	ServicePlanID string `gorm:"primaryKey;size:64" json:"service_plan_id"`
	BaseRole      string `gorm:"primaryKey;size:64;default:''" json:"base_role"`
	ConditionText string `gorm:"type:text" json:"condition_text"`
	OverrideValue *int64 `gorm:"column:override_discount_value" json:"override_discount_value"`
	OverrideUnit  string `gorm:"size:8" json:"override_unit"`
}

// TableName returns the table name
func (DiscountConditionByPlan) TableName() string {
	return "discount_plan_conditions"
}

// DiscountConditionByLineCount is a positional override row over the
// discount's applicable lines (1-based, inclusive range, open-ended max).
type DiscountConditionByLineCount struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscountID    string `gorm:"index;not null;size:64" json:"discount_id"`
	MinLine       int    `gorm:"column:min_applicable_lines;not null;default:1" json:"min_applicable_lines"`
	MaxLine       *int   `gorm:"column:max_applicable_lines" json:"max_applicable_lines"`
	OverrideValue *int64 `gorm:"column:override_discount_value" json:"override_discount_value"`
	OverrideUnit  string `gorm:"size:8" json:"override_unit"`
	PerLine       bool   `gorm:"column:applies_per_line;not null;default:false" json:"applies_per_line"`
}

// TableName returns the table name
func (DiscountConditionByLineCount) TableName() string {
	return "discount_line_count_conditions"
}

// Benefit is a non-monetary perk attached to a combined product
type Benefit struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	CombinedProductID string    `gorm:"index;not null;size:64" json:"combined_product_id"`
	Label             string    `gorm:"size:191;not null" json:"label"`
	Description       string    `gorm:"type:text" json:"description"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName returns the table name
func (Benefit) TableName() string {
	return "benefits"
}

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{
		&Company{},
		&ServicePlan{},
		&CombinedProduct{},
		&CombinedProductEligibility{},
		&RequiredBaseRole{},
		&Discount{},
		&DiscountConditionByPlan{},
		&DiscountConditionByLineCount{},
		&Benefit{},
	}
}
