package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"combo-pricing/core/types"
	"combo-pricing/db/models"
	"combo-pricing/internal/errors"
)

// Product returns one combined product as the core sees it, or (nil, nil)
// when the id is unknown.
func (s *Store) Product(ctx context.Context, id string) (*types.ProductRecord, error) {
	var row models.CombinedProduct
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Catalog("reading combined product failed", err).
			WithContext("combined_product_id", id)
	}

	var company models.Company
	if err := s.db.WithContext(ctx).First(&company, "id = ?", row.CompanyID).Error; err != nil {
		return nil, errors.Catalog("reading company failed", err).
			WithContext("company_id", row.CompanyID)
	}

	var roles []models.RequiredBaseRole
	if err := s.db.WithContext(ctx).
		Where("combined_product_id = ?", id).
		Find(&roles).Error; err != nil {
		return nil, errors.Catalog("reading required base roles failed", err).
			WithContext("combined_product_id", id)
	}

	var required map[string]int
	if len(roles) > 0 {
		required = make(map[string]int, len(roles))
		for _, r := range roles {
			required[r.Role] = r.RequiredCount
		}
	}

	return &types.ProductRecord{
		ID:                 row.ID,
		Name:               row.Name,
		CompanyID:          row.CompanyID,
		CompanyName:        company.Name,
		Description:        row.Description,
		Bounds:             row.Bounds(),
		RequiredRoles:      required,
		JoinCondition:      row.JoinCondition,
		ApplicantScope:     row.ApplicantScope,
		ApplicationChannel: row.ApplicationChannel,
		URL:                row.URL,
		Available:          row.Available,
	}, nil
}

type eligibleRow struct {
	ID          string
	CompanyID   int64
	Name        string
	ServiceType string
	MonthlyFee  int64
	BaseRole    string
	MinLines    int
	MaxLines    *int
}

// EligiblePlans returns the product's eligible plans partitioned by service
// type. Within a type the order is fee-descending then name, which fixes
// the enumeration order.
func (s *Store) EligiblePlans(ctx context.Context, productID string) (map[types.ServiceType][]types.PlanRecord, error) {
	var rows []eligibleRow
	err := s.db.WithContext(ctx).
		Table("combined_product_eligibilities AS e").
		Select("p.id, p.company_id, p.name, p.service_type, p.monthly_fee, e.base_role, e.min_lines, e.max_lines").
		Joins("JOIN service_plans p ON p.id = e.service_plan_id").
		Where("e.combined_product_id = ?", productID).
		Order("p.service_type, p.monthly_fee DESC, p.name, e.base_role").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Catalog("reading eligible plans failed", err).
			WithContext("combined_product_id", productID)
	}

	plans := make(map[types.ServiceType][]types.PlanRecord, 3)
	for _, r := range rows {
		st := types.ServiceType(r.ServiceType)
		if !st.Valid() {
			return nil, errors.Newf(errors.TypeCatalog,
				"service plan %s has unknown service type %q", r.ID, r.ServiceType)
		}
		plans[st] = append(plans[st], types.PlanRecord{
			ID:        r.ID,
			CompanyID: r.CompanyID,
			Name:      r.Name,
			Type:      st,
			Fee:       r.MonthlyFee,
			MinLines:  r.MinLines,
			MaxLines:  r.MaxLines,
			BaseRole:  r.BaseRole,
		})
	}
	return plans, nil
}

// Discounts returns the product's discounts with both condition kinds
// attached, in name order.
func (s *Store) Discounts(ctx context.Context, productID string) ([]types.DiscountRecord, error) {
	var rows []models.Discount
	err := s.db.WithContext(ctx).
		Where("combined_product_id = ?", productID).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Catalog("reading discounts failed", err).
			WithContext("combined_product_id", productID)
	}

	out := make([]types.DiscountRecord, 0, len(rows))
	for _, row := range rows {
		d := types.DiscountRecord{
			ID:           row.ID,
			ProductID:    row.CombinedProductID,
			Name:         row.Name,
			Type:         types.DiscountType(row.DiscountType),
			Value:        row.DiscountValue,
			Unit:         types.Unit(row.Unit),
			AppliesTo:    row.AppliesToTypes(),
			LineSequence: row.LineSequence,
			Note:         row.Note,
		}

		var planConds []models.DiscountConditionByPlan
		if err := s.db.WithContext(ctx).
			Where("discount_id = ?", row.ID).
			Order("service_plan_id, base_role").
			Find(&planConds).Error; err != nil {
			return nil, errors.Catalog("reading plan conditions failed", err).
				WithContext("discount_id", row.ID)
		}
		for _, c := range planConds {
			d.PlanConditions = append(d.PlanConditions, types.PlanCondition{
				PlanID:        c.ServicePlanID,
				BaseRole:      c.BaseRole,
				ConditionText: c.ConditionText,
				OverrideValue: c.OverrideValue,
				OverrideUnit:  types.Unit(c.OverrideUnit),
			})
		}

		var lineConds []models.DiscountConditionByLineCount
		if err := s.db.WithContext(ctx).
			Where("discount_id = ?", row.ID).
			Order("min_applicable_lines, id").
			Find(&lineConds).Error; err != nil {
			return nil, errors.Catalog("reading line-count conditions failed", err).
				WithContext("discount_id", row.ID)
		}
		for _, c := range lineConds {
			d.LineCountConditions = append(d.LineCountConditions, types.LineCountCondition{
				MinLine:       c.MinLine,
				MaxLine:       c.MaxLine,
				OverrideValue: c.OverrideValue,
				OverrideUnit:  types.Unit(c.OverrideUnit),
				PerLine:       c.PerLine,
			})
		}

		out = append(out, d)
	}
	return out, nil
}

// ProductIDs lists every combined product id, name-ordered for stable output
func (s *Store) ProductIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.CombinedProduct{}).
		Order("name").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Catalog("listing combined products failed", err)
	}
	return ids, nil
}
