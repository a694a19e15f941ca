// Package engine orchestrates one pricing query: read the catalog
// snapshot, enumerate admissible bundles, price them, rank and shape the
// results. The engine holds no state across calls.
package engine

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"combo-pricing/core/catalog"
	"combo-pricing/core/enumerate"
	"combo-pricing/core/pricing"
	"combo-pricing/core/ranking"
	"combo-pricing/core/types"
	"combo-pricing/internal/errors"
	"combo-pricing/internal/logging"
)

// Request describes one combination-enumeration query
type Request struct {
	// ProductIDs restricts the query to these products; empty = all
	ProductIDs []string `json:"product_ids,omitempty"`

	// Bounds overrides the products' own per-type line bounds when set
	Bounds *types.BundleBounds `json:"bounds,omitempty"`

	// RequiredPlanNames keeps only bundles containing the named plans
	RequiredPlanNames []string `json:"required_plan_names,omitempty"`

	// RequireAll switches the required-plan filter from any-of to all-of
	RequireAll bool `json:"require_all,omitempty"`

	// SortBy selects the ranking key; defaults to min_final_price
	SortBy types.SortKey `json:"sort_by,omitempty" validate:"omitempty,oneof=max_discount min_final_price max_base_fee"`

	// Limit truncates the result list; 0 = unlimited
	Limit int `json:"limit" validate:"gte=0"`

	// DedupeByProduct keeps only the best-ranked bundle per product
	DedupeByProduct bool `json:"dedupe_by_product,omitempty"`
}

// Engine runs pricing queries against a catalog accessor
type Engine struct {
	catalog  catalog.Accessor
	enum     *enumerate.Enumerator
	calc     *pricing.Calculator
	validate *validator.Validate
	log      *zap.Logger
}

// Option customizes an Engine
type Option func(*Engine)

// WithEnumerator replaces the default enumerator (custom ceilings)
func WithEnumerator(e *enumerate.Enumerator) Option {
	return func(eng *Engine) { eng.enum = e }
}

// WithLogger replaces the default logger
func WithLogger(log *zap.Logger) Option {
	return func(eng *Engine) { eng.log = log }
}

// New creates an engine over a catalog accessor
func New(acc catalog.Accessor, opts ...Option) *Engine {
	eng := &Engine{
		catalog:  acc,
		enum:     enumerate.New(0, 0),
		calc:     pricing.NewCalculator(),
		validate: validator.New(),
		log:      logging.Logger,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EnumerateCombinations enumerates, prices and ranks bundles per Request
func (e *Engine) EnumerateCombinations(ctx context.Context, req Request) ([]types.PricedBundle, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid enumeration request", err)
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = types.SortMinFinalPrice
	}

	productIDs := req.ProductIDs
	if len(productIDs) == 0 {
		ids, err := e.catalog.ProductIDs(ctx)
		if err != nil {
			return nil, err
		}
		productIDs = ids
	}

	mode := enumerate.RequireAny
	if req.RequireAll {
		mode = enumerate.RequireAll
	}

	var results []types.PricedBundle
	for _, id := range productIDs {
		snap, err := catalog.Load(ctx, e.catalog, id)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			e.log.Warn("combined product not found, skipping",
				zap.String("combined_product_id", id))
			continue
		}

		bounds := snap.Product.Bounds
		if req.Bounds != nil {
			bounds = *req.Bounds
		}
		filter := enumerate.Filter{
			PlanNames:     req.RequiredPlanNames,
			Mode:          mode,
			RequiredRoles: snap.Product.RequiredRoles,
		}

		bundles, err := e.enum.Bundles(id, bounds, snap.Plans, filter)
		if err != nil {
			return nil, err
		}
		for _, b := range bundles {
			results = append(results, e.calc.Price(snap.Product, b, snap.Discounts))
		}

		e.log.Debug("enumerated combined product",
			zap.String("combined_product_id", id),
			zap.Int("bundles", len(bundles)))
	}

	ranking.Sort(results, sortBy)
	if req.DedupeByProduct {
		results = ranking.DedupeByProduct(results)
	}
	return ranking.Truncate(results, req.Limit), nil
}

// PriceSingleProduct prices one product's representative bundle: the most
// expensive eligible plan of each service type that has any. Returns
// (nil, nil) when the product does not exist.
func (e *Engine) PriceSingleProduct(ctx context.Context, productID string) (*types.PricedBundle, error) {
	snap, err := catalog.Load(ctx, e.catalog, productID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	bundle := types.Bundle{ProductID: productID}
	for _, st := range types.AllServiceTypes() {
		if top, ok := topFeePlan(snap.Plans[st]); ok {
			bundle.Plans = append(bundle.Plans, top)
		}
	}

	priced := e.calc.Price(snap.Product, bundle, snap.Discounts)
	return &priced, nil
}

// AllProductPricings prices every product's representative bundle
func (e *Engine) AllProductPricings(ctx context.Context) ([]types.PricedBundle, error) {
	ids, err := e.catalog.ProductIDs(ctx)
	if err != nil {
		return nil, err
	}

	pricings := make([]types.PricedBundle, 0, len(ids))
	for _, id := range ids {
		p, err := e.PriceSingleProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			pricings = append(pricings, *p)
		}
	}
	return pricings, nil
}

// TopByDiscount reports the product with the largest total discount
func (e *Engine) TopByDiscount(ctx context.Context) (*types.ProductSummary, error) {
	pricings, err := e.AllProductPricings(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.TopByDiscount(pricings)
}

// CheapestFinalPrice reports the cheapest product with a positive final price
func (e *Engine) CheapestFinalPrice(ctx context.Context) (*types.ProductSummary, error) {
	pricings, err := e.AllProductPricings(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.CheapestFinalPrice(pricings)
}

// HighestBaseFee reports the product with the largest pre-discount fee
func (e *Engine) HighestBaseFee(ctx context.Context) (*types.ProductSummary, error) {
	pricings, err := e.AllProductPricings(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.HighestBaseFee(pricings)
}

func topFeePlan(plans []types.PlanRecord) (types.PlanRecord, bool) {
	if len(plans) == 0 {
		return types.PlanRecord{}, false
	}
	top := plans[0]
	for _, p := range plans[1:] {
		if p.Fee > top.Fee {
			top = p
		}
	}
	return top, true
}
