package hclseed

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"combo-pricing/core/identity"
	"combo-pricing/core/types"
	"combo-pricing/db/models"
	"combo-pricing/db/store"
	"combo-pricing/internal/errors"
	"combo-pricing/internal/logging"
)

// Stats counts the records applied by one load
type Stats struct {
	Companies     int
	Plans         int
	Products      int
	Eligibilities int
	Discounts     int
	Benefits      int
}

// Loader parses seed files and applies them through the store
type Loader struct {
	store  *store.Store
	ids    identity.Generator
	parser *hclparse.Parser
	log    *zap.Logger
}

// New creates a loader over a store. Plan references are resolved with the
// store's own generator so they land on the ids the store writes.
func New(s *store.Store) *Loader {
	return &Loader{
		store:  s,
		ids:    s.Generator(),
		parser: hclparse.NewParser(),
		log:    logging.Logger,
	}
}

// LoadDir parses every .hcl file under dir (recursively, sorted by path)
// and applies the whole set: companies first, then plans, then products,
// so cross-file references resolve regardless of file order.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Stats, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Seed("walking seed directory failed", err).
			WithContext("dir", dir)
	}
	if len(paths) == 0 {
		return nil, errors.Newf(errors.TypeSeed, "no .hcl seed files under %s", dir)
	}
	sort.Strings(paths)

	files := make([]seedFile, 0, len(paths))
	for _, path := range paths {
		f, err := l.parse(path)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return l.apply(ctx, files)
}

// LoadFile parses and applies a single seed file
func (l *Loader) LoadFile(ctx context.Context, path string) (*Stats, error) {
	f, err := l.parse(path)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, []seedFile{*f})
}

func (l *Loader) parse(path string) (*seedFile, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Seed("parsing seed file failed", diags).
			WithContext("path", path)
	}

	var f seedFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, errors.Seed("decoding seed file failed", diags).
			WithContext("path", path)
	}
	return &f, nil
}

func (l *Loader) apply(ctx context.Context, files []seedFile) (*Stats, error) {
	stats := &Stats{}

	if err := l.store.SeedCompanies(ctx); err != nil {
		return nil, err
	}
	companyIDs, err := l.companyIndex(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		for _, c := range f.Companies {
			if err := l.store.UpsertCompany(ctx, c.ID, c.Name); err != nil {
				return nil, err
			}
			companyIDs[c.Name] = c.ID
			stats.Companies++
		}
	}

	for _, f := range files {
		for _, p := range f.Plans {
			companyID, st, err := l.resolveRef(companyIDs, p.Company, p.ServiceType)
			if err != nil {
				return nil, err.WithContext("plan_name", p.Name)
			}
			if _, err := l.store.UpsertServicePlan(ctx, store.PlanParams{
				CompanyID:   companyID,
				Name:        p.Name,
				ServiceType: st,
				MonthlyFee:  p.MonthlyFee,
			}); err != nil {
				return nil, err
			}
			stats.Plans++
		}
	}

	for _, f := range files {
		for _, p := range f.Products {
			if err := l.applyProduct(ctx, companyIDs, p, stats); err != nil {
				return nil, err
			}
		}
	}

	l.log.Info("seed applied",
		zap.Int("companies", stats.Companies),
		zap.Int("plans", stats.Plans),
		zap.Int("products", stats.Products),
		zap.Int("eligibilities", stats.Eligibilities),
		zap.Int("discounts", stats.Discounts),
		zap.Int("benefits", stats.Benefits))
	return stats, nil
}

func (l *Loader) applyProduct(ctx context.Context, companyIDs map[string]int64,
	p productBlock, stats *Stats) error {

	companyID, ok := companyIDs[p.Company]
	if !ok {
		return errors.Newf(errors.TypeSeed, "product %q references unknown company %q", p.Name, p.Company)
	}

	available := true
	if p.Available != nil {
		available = *p.Available
	}
	productID, err := l.store.UpsertCombinedProduct(ctx, store.ProductParams{
		CompanyID:   companyID,
		CompanyName: p.Company,
		Name:        p.Name,
		Description: p.Description,
		Bounds: types.BundleBounds{
			Mobile:   types.LineBounds{Min: p.MinMobileLines, Max: p.MaxMobileLines},
			Internet: types.LineBounds{Min: p.MinInternetLines, Max: p.MaxInternetLines},
			TV:       types.LineBounds{Min: p.MinTVLines, Max: p.MaxTVLines},
		},
		JoinCondition:      p.JoinCondition,
		ApplicantScope:     p.ApplicantScope,
		ApplicationChannel: p.ApplicationChannel,
		URL:                p.URL,
		Available:          available,
	})
	if err != nil {
		return err
	}
	stats.Products++

	for _, e := range p.Eligibilities {
		planID, err := l.planID(companyIDs, e.Company, e.ServiceType, e.Plan)
		if err != nil {
			return err.WithContext("product_name", p.Name)
		}
		maxLines := e.MaxLines
		if maxLines == nil {
			maxLines = types.IntPtr(1)
		}
		if err := l.store.LinkEligibility(ctx, models.CombinedProductEligibility{
			CombinedProductID: productID,
			ServicePlanID:     planID,
			BaseRole:          e.BaseRole,
			MinLines:          e.MinLines,
			MaxLines:          maxLines,
		}); err != nil {
			return err
		}
		stats.Eligibilities++
	}

	for _, r := range p.RequiredRoles {
		count := 1
		if r.Count != nil {
			count = *r.Count
		}
		if err := l.store.UpsertRequiredBaseRole(ctx, models.RequiredBaseRole{
			CombinedProductID: productID,
			Role:              r.Role,
			RequiredCount:     count,
		}); err != nil {
			return err
		}
	}

	for _, d := range p.Discounts {
		if err := l.applyDiscount(ctx, companyIDs, productID, d); err != nil {
			return err
		}
		stats.Discounts++
	}

	for _, b := range p.Benefits {
		if _, err := l.store.UpsertBenefit(ctx, store.BenefitParams{
			ProductID:   productID,
			Label:       b.Label,
			Description: b.Description,
		}); err != nil {
			return err
		}
		stats.Benefits++
	}
	return nil
}

func (l *Loader) applyDiscount(ctx context.Context, companyIDs map[string]int64,
	productID string, d discountBlock) error {

	appliesTo := make([]types.ServiceType, 0, len(d.AppliesTo))
	for _, raw := range d.AppliesTo {
		st := types.ServiceType(raw)
		if !st.Valid() {
			return errors.Newf(errors.TypeSeed, "discount %q: unknown service type %q", d.Name, raw)
		}
		appliesTo = append(appliesTo, st)
	}

	discountID, err := l.store.UpsertDiscount(ctx, store.DiscountParams{
		ProductID:    productID,
		Name:         d.Name,
		Type:         types.DiscountType(d.Type),
		Value:        d.Value,
		Unit:         types.Unit(d.Unit),
		AppliesTo:    appliesTo,
		LineSequence: d.LineSequence,
		Note:         d.Note,
	})
	if err != nil {
		return err
	}

	for _, c := range d.PlanConditions {
		planID, perr := l.planID(companyIDs, c.Company, c.ServiceType, c.Plan)
		if perr != nil {
			return perr.WithContext("discount_name", d.Name)
		}
		if err := l.store.UpsertPlanCondition(ctx, models.DiscountConditionByPlan{
			DiscountID:    discountID,
			ServicePlanID: planID,
			BaseRole:      c.BaseRole,
			ConditionText: c.Text,
			OverrideValue: c.Value,
			OverrideUnit:  c.Unit,
		}); err != nil {
			return err
		}
	}

	if len(d.LineCountConditions) > 0 {
		rows := make([]models.DiscountConditionByLineCount, 0, len(d.LineCountConditions))
		for _, c := range d.LineCountConditions {
			rows = append(rows, models.DiscountConditionByLineCount{
				DiscountID:    discountID,
				MinLine:       c.MinLine,
				MaxLine:       c.MaxLine,
				OverrideValue: c.Value,
				OverrideUnit:  c.Unit,
				PerLine:       c.PerLine,
			})
		}
		if err := l.store.ReplaceLineCountConditions(ctx, discountID, rows); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) companyIndex(ctx context.Context) (map[string]int64, error) {
	companies, err := l.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int64, len(companies))
	for _, c := range companies {
		idx[c.Name] = c.ID
	}
	return idx, nil
}

func (l *Loader) resolveRef(companyIDs map[string]int64, company, serviceType string) (int64, types.ServiceType, *errors.Error) {
	companyID, ok := companyIDs[company]
	if !ok {
		return 0, "", errors.Newf(errors.TypeSeed, "unknown company %q", company)
	}
	st := types.ServiceType(serviceType)
	if !st.Valid() {
		return 0, "", errors.Newf(errors.TypeSeed, "unknown service type %q", serviceType)
	}
	return companyID, st, nil
}

func (l *Loader) planID(companyIDs map[string]int64, company, serviceType, plan string) (string, *errors.Error) {
	companyID, st, err := l.resolveRef(companyIDs, company, serviceType)
	if err != nil {
		return "", err
	}
	return l.ids.PlanID(companyID, st, plan), nil
}
