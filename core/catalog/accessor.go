// Package catalog defines the read contract between the pricing core and
// the catalog storage layer, and assembles immutable per-product snapshots.
package catalog

import (
	"context"

	"combo-pricing/core/types"
)

// Accessor is the read-only catalog contract consumed by the core.
//
// An unknown product id yields (nil, nil) from Product — absence is an
// expected, checkable outcome, not a fault. Genuine access failures
// (connectivity, malformed rows) surface as errors.TypeCatalog errors.
type Accessor interface {
	// Product returns the product's bounds and metadata, or nil when absent
	Product(ctx context.Context, id string) (*types.ProductRecord, error)

	// EligiblePlans returns the product's eligible plans partitioned by
	// service type, each carrying its fee, line bounds and base role
	EligiblePlans(ctx context.Context, productID string) (map[types.ServiceType][]types.PlanRecord, error)

	// Discounts returns the product's discounts with their plan- and
	// line-count-override conditions attached
	Discounts(ctx context.Context, productID string) ([]types.DiscountRecord, error)

	// ProductIDs lists every combined product id in the catalog
	ProductIDs(ctx context.Context) ([]string, error)
}

// Snapshot is the full catalog view for one combined product, read once
// before enumeration begins. The core treats it as immutable for the
// duration of a query; concurrent catalog writes are not isolated against
// (acceptable for a reporting core, not a transactional one).
type Snapshot struct {
	Product   types.ProductRecord
	Plans     map[types.ServiceType][]types.PlanRecord
	Discounts []types.DiscountRecord
}

// Load assembles the snapshot for a product. Returns (nil, nil) when the
// product does not exist.
func Load(ctx context.Context, acc Accessor, productID string) (*Snapshot, error) {
	product, err := acc.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	plans, err := acc.EligiblePlans(ctx, productID)
	if err != nil {
		return nil, err
	}

	discounts, err := acc.Discounts(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Product:   *product,
		Plans:     plans,
		Discounts: discounts,
	}, nil
}
