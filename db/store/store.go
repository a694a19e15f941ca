// Package store persists the catalog with GORM and implements the read
// contract the pricing core consumes. Writes are idempotent upserts keyed
// on content-derived identifiers.
package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"combo-pricing/core/identity"
	"combo-pricing/core/types"
	"combo-pricing/db/models"
	"combo-pricing/internal/errors"
)

// Store wraps a GORM handle and the identifier generator
type Store struct {
	db  *gorm.DB
	ids identity.Generator
}

// New creates a store; a nil generator defaults to SHA-256 identifiers
func New(db *gorm.DB, ids identity.Generator) *Store {
	if ids == nil {
		ids = identity.SHA256Generator{}
	}
	return &Store{db: db, ids: ids}
}

// DB exposes the underlying handle for migrations and tests
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Generator exposes the identifier generator so writers that derive ids
// ahead of a store call (the seed loader) stay keyed the same way.
func (s *Store) Generator() identity.Generator {
	return s.ids
}

// Migrate creates or updates the full schema
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(models.All()...); err != nil {
		return errors.Catalog("schema migration failed", err)
	}
	return nil
}

// SeedCompanies inserts the fixed company set; existing rows are untouched
func (s *Store) SeedCompanies(ctx context.Context) error {
	companies := []models.Company{
		{ID: 1, Name: "skt"},
		{ID: 2, Name: "kt"},
		{ID: 3, Name: "lguplus"},
		{ID: 4, Name: "others"},
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&companies).Error
	if err != nil {
		return errors.Catalog("seeding companies failed", err)
	}
	return nil
}

// UpsertCompany inserts or renames a company
func (s *Store) UpsertCompany(ctx context.Context, id int64, name string) error {
	row := models.Company{ID: id, Name: name}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return errors.Catalog("upserting company failed", err).
			WithContext("company_name", name)
	}
	return nil
}

// PlanParams describes one service plan to upsert
type PlanParams struct {
	CompanyID   int64
	Name        string
	ServiceType types.ServiceType
	MonthlyFee  int64
}

// UpsertServicePlan inserts or updates a plan and returns its id
func (s *Store) UpsertServicePlan(ctx context.Context, p PlanParams) (string, error) {
	id := s.ids.PlanID(p.CompanyID, p.ServiceType, p.Name)
	row := models.ServicePlan{
		ID:          id,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		ServiceType: p.ServiceType.String(),
		MonthlyFee:  p.MonthlyFee,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_fee", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return "", errors.Catalog("upserting service plan failed", err).
			WithContext("plan_name", p.Name)
	}
	return id, nil
}

// ProductParams describes one combined product to upsert
type ProductParams struct {
	CompanyID          int64
	CompanyName        string
	Name               string
	Description        string
	Bounds             types.BundleBounds
	JoinCondition      string
	ApplicantScope     string
	ApplicationChannel string
	URL                string
	Available          bool
}

// UpsertCombinedProduct inserts or updates a product and returns its id
func (s *Store) UpsertCombinedProduct(ctx context.Context, p ProductParams) (string, error) {
	id := s.ids.ProductID(p.CompanyName, p.Name)
	row := models.CombinedProduct{
		ID:                 id,
		CompanyID:          p.CompanyID,
		Name:               p.Name,
		Description:        p.Description,
		MinMobileLines:     p.Bounds.Mobile.Min,
		MaxMobileLines:     p.Bounds.Mobile.Max,
		MinInternetLines:   p.Bounds.Internet.Min,
		MaxInternetLines:   p.Bounds.Internet.Max,
		MinTVLines:         p.Bounds.TV.Min,
		MaxTVLines:         p.Bounds.TV.Max,
		JoinCondition:      p.JoinCondition,
		ApplicantScope:     p.ApplicantScope,
		ApplicationChannel: p.ApplicationChannel,
		URL:                p.URL,
		Available:          p.Available,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description",
				"min_mobile_lines", "max_mobile_lines",
				"min_internet_lines", "max_internet_lines",
				"min_tv_lines", "max_tv_lines",
				"join_condition", "applicant_scope", "application_channel",
				"url", "available", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return "", errors.Catalog("upserting combined product failed", err).
			WithContext("product_name", p.Name)
	}
	return id, nil
}

// LinkEligibility upserts one product-plan eligibility edge
func (s *Store) LinkEligibility(ctx context.Context, e models.CombinedProductEligibility) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "combined_product_id"},
				{Name: "service_plan_id"},
				{Name: "base_role"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"min_lines", "max_lines"}),
		}).
		Create(&e).Error
	if err != nil {
		return errors.Catalog("linking plan eligibility failed", err).
			WithContext("combined_product_id", e.CombinedProductID).
			WithContext("service_plan_id", e.ServicePlanID)
	}
	return nil
}

// UpsertRequiredBaseRole upserts one required-role row for a product
func (s *Store) UpsertRequiredBaseRole(ctx context.Context, r models.RequiredBaseRole) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "combined_product_id"},
				{Name: "role"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"required_count"}),
		}).
		Create(&r).Error
	if err != nil {
		return errors.Catalog("upserting required base role failed", err).
			WithContext("combined_product_id", r.CombinedProductID)
	}
	return nil
}

// DiscountParams describes one discount to upsert
type DiscountParams struct {
	ProductID    string
	Name         string
	Type         types.DiscountType
	Value        int64
	Unit         types.Unit
	AppliesTo    []types.ServiceType
	LineSequence string
	Note         string
}

// UpsertDiscount inserts or updates a discount and returns its id
func (s *Store) UpsertDiscount(ctx context.Context, p DiscountParams) (string, error) {
	id := s.ids.DiscountID(p.ProductID, p.Name)
	row := models.Discount{
		ID:                id,
		CombinedProductID: p.ProductID,
		Name:              p.Name,
		DiscountType:      string(p.Type),
		DiscountValue:     p.Value,
		Unit:              string(p.Unit),
		AppliesTo:         models.JoinServiceTypes(p.AppliesTo),
		LineSequence:      p.LineSequence,
		Note:              p.Note,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"discount_type", "discount_value", "unit",
				"applies_to_service_type", "applies_to_line_sequence",
				"note", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return "", errors.Catalog("upserting discount failed", err).
			WithContext("discount_name", p.Name)
	}
	return id, nil
}

// UpsertPlanCondition upserts one plan-based override row
func (s *Store) UpsertPlanCondition(ctx context.Context, c models.DiscountConditionByPlan) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "discount_id"},
				{Name: "service_plan_id"},
				{Name: "base_role"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"condition_text", "override_discount_value", "override_unit",
			}),
		}).
		Create(&c).Error
	if err != nil {
		return errors.Catalog("upserting plan condition failed", err).
			WithContext("discount_id", c.DiscountID)
	}
	return nil
}

// ReplaceLineCountConditions swaps a discount's positional override rows.
// The rows have no natural key, so replace is the idempotent write.
func (s *Store) ReplaceLineCountConditions(ctx context.Context, discountID string,
	conds []models.DiscountConditionByLineCount) error {

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discount_id = ?", discountID).
			Delete(&models.DiscountConditionByLineCount{}).Error; err != nil {
			return err
		}
		if len(conds) == 0 {
			return nil
		}
		for i := range conds {
			conds[i].ID = 0
			conds[i].DiscountID = discountID
		}
		return tx.Create(&conds).Error
	})
	if err != nil {
		return errors.Catalog("replacing line-count conditions failed", err).
			WithContext("discount_id", discountID)
	}
	return nil
}

// BenefitParams describes one benefit to upsert
type BenefitParams struct {
	ProductID   string
	Label       string
	Description string
}

// UpsertBenefit inserts or updates a benefit and returns its id
func (s *Store) UpsertBenefit(ctx context.Context, b BenefitParams) (string, error) {
	id := s.ids.BenefitID(b.ProductID, b.Label)
	row := models.Benefit{
		ID:                id,
		CombinedProductID: b.ProductID,
		Label:             b.Label,
		Description:       b.Description,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"description"}),
		}).
		Create(&row).Error
	if err != nil {
		return "", errors.Catalog("upserting benefit failed", err).
			WithContext("label", b.Label)
	}
	return id, nil
}
