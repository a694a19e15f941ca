// Package csvexport writes catalog tables and pricing results to CSV files
// for spreadsheet review.
package csvexport

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"combo-pricing/core/types"
	"combo-pricing/db/store"
	"combo-pricing/internal/errors"
	"combo-pricing/internal/logging"
)

// Exporter dumps store tables and priced results into a directory
type Exporter struct {
	store *store.Store
	dir   string
	log   *zap.Logger
}

// New creates an exporter writing into dir
func New(s *store.Store, dir string) *Exporter {
	return &Exporter{store: s, dir: dir, log: logging.Logger}
}

// ExportCatalog writes one CSV per catalog table and returns the paths
func (e *Exporter) ExportCatalog(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, errors.Internal("creating export directory failed", err).
			WithContext("dir", e.dir)
	}

	var paths []string
	writers := []struct {
		name  string
		write func(context.Context, string) error
	}{
		{"companies.csv", e.writeCompanies},
		{"service_plans.csv", e.writeServicePlans},
		{"combined_products.csv", e.writeCombinedProducts},
		{"combined_product_eligibilities.csv", e.writeEligibilities},
		{"required_base_roles.csv", e.writeRequiredBaseRoles},
		{"discounts.csv", e.writeDiscounts},
		{"discount_plan_conditions.csv", e.writePlanConditions},
		{"discount_line_count_conditions.csv", e.writeLineCountConditions},
		{"benefits.csv", e.writeBenefits},
	}
	for _, w := range writers {
		path := filepath.Join(e.dir, w.name)
		if err := w.write(ctx, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	e.log.Info("catalog exported", zap.String("dir", e.dir), zap.Int("files", len(paths)))
	return paths, nil
}

// ExportPricings writes priced bundles to name under the export directory
func (e *Exporter) ExportPricings(ctx context.Context, bundles []types.PricedBundle, name string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.Internal("creating export directory failed", err).
			WithContext("dir", e.dir)
	}

	records := [][]string{{
		"combined_product_id", "combined_product_name", "company_name",
		"plans", "base_fee", "discount_total", "final_price",
	}}
	for _, b := range bundles {
		records = append(records, []string{
			b.ProductID,
			b.ProductName,
			b.CompanyName,
			strings.Join(b.PlanNames(), "|"),
			strconv.FormatInt(b.BaseFee, 10),
			strconv.FormatInt(b.DiscountTotal, 10),
			strconv.FormatInt(b.FinalPrice, 10),
		})
	}

	path := filepath.Join(e.dir, name)
	if err := writeCSV(path, records); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) writeCompanies(ctx context.Context, path string) error {
	rows, err := e.store.ListCompanies(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{"id", "name"}}
	for _, r := range rows {
		records = append(records, []string{strconv.FormatInt(r.ID, 10), r.Name})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeServicePlans(ctx context.Context, path string) error {
	rows, err := e.store.ListServicePlans(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{"id", "company", "service_type", "name", "monthly_fee"}}
	for _, r := range rows {
		records = append(records, []string{
			r.ID, r.CompanyName, r.ServiceType, r.Name,
			strconv.FormatInt(r.MonthlyFee, 10),
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeCombinedProducts(ctx context.Context, path string) error {
	rows, err := e.store.ListCombinedProducts(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{
		"id", "company", "name", "description",
		"min_mobile_lines", "max_mobile_lines",
		"min_internet_lines", "max_internet_lines",
		"min_tv_lines", "max_tv_lines",
		"join_condition", "applicant_scope", "application_channel",
		"url", "available",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.ID, r.CompanyName, r.Name, r.Description,
			strconv.Itoa(r.MinMobileLines), intPtrField(r.MaxMobileLines),
			strconv.Itoa(r.MinInternetLines), intPtrField(r.MaxInternetLines),
			strconv.Itoa(r.MinTVLines), intPtrField(r.MaxTVLines),
			r.JoinCondition, r.ApplicantScope, r.ApplicationChannel,
			r.URL, strconv.FormatBool(r.Available),
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeEligibilities(ctx context.Context, path string) error {
	rows, err := e.store.ListEligibilities(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{
		"combined_product_id", "service_plan_id", "base_role", "min_lines", "max_lines",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.CombinedProductID, r.ServicePlanID, r.BaseRole,
			strconv.Itoa(r.MinLines), intPtrField(r.MaxLines),
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeRequiredBaseRoles(ctx context.Context, path string) error {
	rows, err := e.store.ListRequiredBaseRoles(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{"combined_product_id", "role", "required_count"}}
	for _, r := range rows {
		records = append(records, []string{
			r.CombinedProductID, r.Role, strconv.Itoa(r.RequiredCount),
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeDiscounts(ctx context.Context, path string) error {
	rows, err := e.store.ListDiscounts(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{
		"id", "combined_product_id", "discount_name", "discount_type",
		"discount_value", "unit", "applies_to_service_type",
		"applies_to_line_sequence", "note",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.ID, r.CombinedProductID, r.Name, r.DiscountType,
			strconv.FormatInt(r.DiscountValue, 10), r.Unit, r.AppliesTo,
			r.LineSequence, r.Note,
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writePlanConditions(ctx context.Context, path string) error {
	rows, err := e.store.ListPlanConditions(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{
		"discount_id", "service_plan_id", "base_role", "condition_text",
		"override_discount_value", "override_unit",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.DiscountID, r.ServicePlanID, r.BaseRole, r.ConditionText,
			int64PtrField(r.OverrideValue), r.OverrideUnit,
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeLineCountConditions(ctx context.Context, path string) error {
	rows, err := e.store.ListLineCountConditions(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{
		"discount_id", "min_applicable_lines", "max_applicable_lines",
		"override_discount_value", "override_unit", "applies_per_line",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.DiscountID, strconv.Itoa(r.MinLine), intPtrField(r.MaxLine),
			int64PtrField(r.OverrideValue), r.OverrideUnit,
			strconv.FormatBool(r.PerLine),
		})
	}
	return writeCSV(path, records)
}

func (e *Exporter) writeBenefits(ctx context.Context, path string) error {
	rows, err := e.store.ListBenefits(ctx)
	if err != nil {
		return err
	}
	records := [][]string{{"id", "combined_product_id", "label", "description"}}
	for _, r := range rows {
		records = append(records, []string{
			r.ID, r.CombinedProductID, r.Label, r.Description,
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Internal("creating csv file failed", err).
			WithContext("path", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return errors.Internal("writing csv file failed", err).
			WithContext("path", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Internal("flushing csv file failed", err).
			WithContext("path", path)
	}
	return nil
}

func intPtrField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func int64PtrField(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
