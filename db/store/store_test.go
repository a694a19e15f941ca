package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combo-pricing/core/types"
	"combo-pricing/db/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	s := New(db, nil)
	require.NoError(t, s.Migrate())
	return s
}

func TestSeedCompaniesIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedCompanies(ctx))
	require.NoError(t, s.SeedCompanies(ctx))

	companies, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 4)
	assert.Equal(t, "skt", companies[0].Name)
	assert.Equal(t, "others", companies[3].Name)
}

func TestUpsertServicePlanIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.SeedCompanies(ctx))

	id1, err := s.UpsertServicePlan(ctx, PlanParams{
		CompanyID: 1, Name: "Prime", ServiceType: types.ServiceMobile, MonthlyFee: 50000,
	})
	require.NoError(t, err)

	// same plan, new fee: row is updated in place
	id2, err := s.UpsertServicePlan(ctx, PlanParams{
		CompanyID: 1, Name: "Prime", ServiceType: types.ServiceMobile, MonthlyFee: 55000,
	})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	plans, err := s.ListServicePlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, int64(55000), plans[0].MonthlyFee)
	assert.Equal(t, "skt", plans[0].CompanyName)
}

// seedFixture loads a small two-plan product and returns its id
func seedFixture(t *testing.T, s *Store) (productID string, primeID, gigaID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.SeedCompanies(ctx))

	var err error
	primeID, err = s.UpsertServicePlan(ctx, PlanParams{
		CompanyID: 1, Name: "Prime", ServiceType: types.ServiceMobile, MonthlyFee: 50000,
	})
	require.NoError(t, err)
	gigaID, err = s.UpsertServicePlan(ctx, PlanParams{
		CompanyID: 1, Name: "Giga", ServiceType: types.ServiceInternet, MonthlyFee: 30000,
	})
	require.NoError(t, err)

	productID, err = s.UpsertCombinedProduct(ctx, ProductParams{
		CompanyID:   1,
		CompanyName: "skt",
		Name:        "Test Bundle",
		Bounds: types.BundleBounds{
			Mobile:   types.LineBounds{Min: 1, Max: types.IntPtr(2)},
			Internet: types.LineBounds{Min: 1, Max: types.IntPtr(1)},
		},
		Available: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.LinkEligibility(ctx, models.CombinedProductEligibility{
		CombinedProductID: productID, ServicePlanID: primeID, MaxLines: types.IntPtr(2),
	}))
	require.NoError(t, s.LinkEligibility(ctx, models.CombinedProductEligibility{
		CombinedProductID: productID, ServicePlanID: gigaID,
		BaseRole: "anchor", MaxLines: types.IntPtr(1),
	}))
	require.NoError(t, s.UpsertRequiredBaseRole(ctx, models.RequiredBaseRole{
		CombinedProductID: productID, Role: "anchor", RequiredCount: 1,
	}))
	return productID, primeID, gigaID
}

func TestCatalogRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	productID, primeID, gigaID := seedFixture(t, s)

	discountID, err := s.UpsertDiscount(ctx, DiscountParams{
		ProductID: productID,
		Name:      "Line Discount",
		Type:      types.DiscountAmount,
		Value:     1000,
		Unit:      types.UnitKRW,
		AppliesTo: []types.ServiceType{types.ServiceMobile},
	})
	require.NoError(t, err)

	override := int64(1500)
	require.NoError(t, s.UpsertPlanCondition(ctx, models.DiscountConditionByPlan{
		DiscountID:    discountID,
		ServicePlanID: primeID,
		OverrideValue: &override,
	}))
	require.NoError(t, s.ReplaceLineCountConditions(ctx, discountID,
		[]models.DiscountConditionByLineCount{
			{MinLine: 2, PerLine: true, OverrideValue: &override},
		}))

	product, err := s.Product(ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Test Bundle", product.Name)
	assert.Equal(t, "skt", product.CompanyName)
	assert.Equal(t, 1, product.Bounds.Mobile.Min)
	require.NotNil(t, product.Bounds.Mobile.Max)
	assert.Equal(t, 2, *product.Bounds.Mobile.Max)
	assert.Equal(t, map[string]int{"anchor": 1}, product.RequiredRoles)

	plans, err := s.EligiblePlans(ctx, productID)
	require.NoError(t, err)
	require.Len(t, plans[types.ServiceMobile], 1)
	require.Len(t, plans[types.ServiceInternet], 1)
	assert.Equal(t, primeID, plans[types.ServiceMobile][0].ID)
	assert.Equal(t, int64(50000), plans[types.ServiceMobile][0].Fee)
	assert.Equal(t, "anchor", plans[types.ServiceInternet][0].BaseRole)
	assert.Equal(t, gigaID, plans[types.ServiceInternet][0].ID)

	discounts, err := s.Discounts(ctx, productID)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	d := discounts[0]
	assert.Equal(t, []types.ServiceType{types.ServiceMobile}, d.AppliesTo)
	require.Len(t, d.PlanConditions, 1)
	assert.Equal(t, primeID, d.PlanConditions[0].PlanID)
	require.NotNil(t, d.PlanConditions[0].OverrideValue)
	assert.Equal(t, int64(1500), *d.PlanConditions[0].OverrideValue)
	require.Len(t, d.LineCountConditions, 1)
	assert.True(t, d.LineCountConditions[0].PerLine)

	ids, err := s.ProductIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{productID}, ids)
}

func TestProductNotFound(t *testing.T) {
	s := testStore(t)

	product, err := s.Product(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestReplaceLineCountConditionsReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	productID, _, _ := seedFixture(t, s)

	discountID, err := s.UpsertDiscount(ctx, DiscountParams{
		ProductID: productID, Name: "D", Type: types.DiscountAmount,
		Value: 1000, Unit: types.UnitKRW,
	})
	require.NoError(t, err)

	require.NoError(t, s.ReplaceLineCountConditions(ctx, discountID,
		[]models.DiscountConditionByLineCount{
			{MinLine: 1}, {MinLine: 2}, {MinLine: 3},
		}))
	require.NoError(t, s.ReplaceLineCountConditions(ctx, discountID,
		[]models.DiscountConditionByLineCount{
			{MinLine: 5},
		}))

	rows, err := s.ListLineCountConditions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].MinLine)
}

func TestUpsertCombinedProductUpdates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	productID, _, _ := seedFixture(t, s)

	// same (company, name): same id, updated columns
	id2, err := s.UpsertCombinedProduct(ctx, ProductParams{
		CompanyID:   1,
		CompanyName: "skt",
		Name:        "Test Bundle",
		Description: "updated",
		Bounds: types.BundleBounds{
			Mobile: types.LineBounds{Min: 2, Max: types.IntPtr(3)},
		},
		Available: false,
	})
	require.NoError(t, err)
	assert.Equal(t, productID, id2)

	var row models.CombinedProduct
	require.NoError(t, s.DB().First(&row, "id = ?", productID).Error)
	assert.Equal(t, "updated", row.Description)
	assert.Equal(t, 2, row.MinMobileLines)
	assert.False(t, row.Available)

	var count int64
	require.NoError(t, s.DB().Model(&models.CombinedProduct{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
