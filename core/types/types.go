// Package types - Shared domain types for the bundle pricing core
package types

// ServiceType is one of the closed set of line categories within a bundle
type ServiceType string

const (
	ServiceMobile   ServiceType = "Mobile"
	ServiceInternet ServiceType = "Internet"
	ServiceTV       ServiceType = "TV"
)

// AllServiceTypes returns the service types in canonical order
func AllServiceTypes() []ServiceType {
	return []ServiceType{ServiceMobile, ServiceInternet, ServiceTV}
}

// Valid reports whether s is one of the known service types
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceMobile, ServiceInternet, ServiceTV:
		return true
	}
	return false
}

// String returns the string representation
func (s ServiceType) String() string {
	return string(s)
}

// Unit is the unit of a discount value
type Unit string

const (
	// UnitKRW is a fixed amount in the smallest currency unit
	UnitKRW Unit = "KRW"

	// UnitPercent is a percentage of the plan fee
	UnitPercent Unit = "%"
)

// DiscountType distinguishes amount-based from percentage-based discounts
type DiscountType string

const (
	DiscountAmount     DiscountType = "Amount"
	DiscountPercentage DiscountType = "Percentage"
)

// LineBounds holds the min/max line counts for one service type.
// A nil Max means the catalog row left the bound unspecified.
type LineBounds struct {
	Min int  `json:"min"`
	Max *int `json:"max,omitempty"`
}

// BundleBounds holds per-service-type line bounds for a combined product.
// Absent types default to the zero LineBounds (0, nil).
type BundleBounds struct {
	Mobile   LineBounds `json:"mobile"`
	Internet LineBounds `json:"internet"`
	TV       LineBounds `json:"tv"`
}

// For returns the bounds for a service type
func (b BundleBounds) For(t ServiceType) LineBounds {
	switch t {
	case ServiceMobile:
		return b.Mobile
	case ServiceInternet:
		return b.Internet
	case ServiceTV:
		return b.TV
	default:
		return LineBounds{}
	}
}

// Set replaces the bounds for a service type
func (b *BundleBounds) Set(t ServiceType, lb LineBounds) {
	switch t {
	case ServiceMobile:
		b.Mobile = lb
	case ServiceInternet:
		b.Internet = lb
	case ServiceTV:
		b.TV = lb
	}
}

// IntPtr is a convenience for optional integer columns and bounds
func IntPtr(v int) *int {
	return &v
}
