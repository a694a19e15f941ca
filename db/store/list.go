package store

import (
	"context"

	"combo-pricing/db/models"
	"combo-pricing/internal/errors"
)

// Listing queries back the CSV exporter and reporting commands. Results are
// name-ordered so repeated exports diff cleanly.

// ListCompanies returns every company
func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Catalog("listing companies failed", err)
	}
	return rows, nil
}

// PlanListing is a service plan joined with its company name
type PlanListing struct {
	models.ServicePlan
	CompanyName string
}

// ListServicePlans returns every plan with its company name attached
func (s *Store) ListServicePlans(ctx context.Context) ([]PlanListing, error) {
	var rows []PlanListing
	err := s.db.WithContext(ctx).
		Table("service_plans AS p").
		Select("p.*, c.name AS company_name").
		Joins("JOIN companies c ON c.id = p.company_id").
		Order("c.name, p.service_type, p.name").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing service plans failed", err)
	}
	return rows, nil
}

// ProductListing is a combined product joined with its company name
type ProductListing struct {
	models.CombinedProduct
	CompanyName string
}

// ListCombinedProducts returns every product with its company name attached
func (s *Store) ListCombinedProducts(ctx context.Context) ([]ProductListing, error) {
	var rows []ProductListing
	err := s.db.WithContext(ctx).
		Table("combined_products AS cp").
		Select("cp.*, c.name AS company_name").
		Joins("JOIN companies c ON c.id = cp.company_id").
		Order("c.name, cp.name").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing combined products failed", err)
	}
	return rows, nil
}

// ListEligibilities returns every product-plan eligibility edge
func (s *Store) ListEligibilities(ctx context.Context) ([]models.CombinedProductEligibility, error) {
	var rows []models.CombinedProductEligibility
	err := s.db.WithContext(ctx).
		Order("combined_product_id, service_plan_id, base_role").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing eligibilities failed", err)
	}
	return rows, nil
}

// ListRequiredBaseRoles returns every required-role row
func (s *Store) ListRequiredBaseRoles(ctx context.Context) ([]models.RequiredBaseRole, error) {
	var rows []models.RequiredBaseRole
	err := s.db.WithContext(ctx).
		Order("combined_product_id, role").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing required base roles failed", err)
	}
	return rows, nil
}

// ListDiscounts returns every discount
func (s *Store) ListDiscounts(ctx context.Context) ([]models.Discount, error) {
	var rows []models.Discount
	err := s.db.WithContext(ctx).
		Order("combined_product_id, name").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing discounts failed", err)
	}
	return rows, nil
}

// ListPlanConditions returns every plan-based override row
func (s *Store) ListPlanConditions(ctx context.Context) ([]models.DiscountConditionByPlan, error) {
	var rows []models.DiscountConditionByPlan
	err := s.db.WithContext(ctx).
		Order("discount_id, service_plan_id, base_role").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing plan conditions failed", err)
	}
	return rows, nil
}

// ListLineCountConditions returns every positional override row
func (s *Store) ListLineCountConditions(ctx context.Context) ([]models.DiscountConditionByLineCount, error) {
	var rows []models.DiscountConditionByLineCount
	err := s.db.WithContext(ctx).
		Order("discount_id, min_applicable_lines, id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing line-count conditions failed", err)
	}
	return rows, nil
}

// ListBenefits returns every benefit row
func (s *Store) ListBenefits(ctx context.Context) ([]models.Benefit, error) {
	var rows []models.Benefit
	err := s.db.WithContext(ctx).
		Order("combined_product_id, label").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("listing benefits failed", err)
	}
	return rows, nil
}
