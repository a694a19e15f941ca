package csvexport

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combo-pricing/core/types"
	"combo-pricing/db/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	s := store.New(db, nil)
	require.NoError(t, s.Migrate())
	require.NoError(t, s.SeedCompanies(context.Background()))
	return s
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCatalogWritesAllTables(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.UpsertServicePlan(ctx, store.PlanParams{
		CompanyID: 1, Name: "Prime", ServiceType: types.ServiceMobile, MonthlyFee: 50000,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := New(s, dir).ExportCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 9)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}

	companies := readCSV(t, filepath.Join(dir, "companies.csv"))
	require.Len(t, companies, 5)
	assert.Equal(t, []string{"id", "name"}, companies[0])
	assert.Equal(t, []string{"1", "skt"}, companies[1])

	plans := readCSV(t, filepath.Join(dir, "service_plans.csv"))
	require.Len(t, plans, 2)
	assert.Equal(t, "Prime", plans[1][3])
	assert.Equal(t, "50000", plans[1][4])
}

func TestExportPricings(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()

	bundles := []types.PricedBundle{
		{
			ProductID:   "p1",
			ProductName: "Duo",
			CompanyName: "skt",
			Plans: []types.PlanRecord{
				{Name: "Prime", Type: types.ServiceMobile, Fee: 50000},
				{Name: "Giga", Type: types.ServiceInternet, Fee: 30000},
			},
			BaseFee:       80000,
			DiscountTotal: 5000,
			FinalPrice:    75000,
		},
	}

	path, err := New(s, dir).ExportPricings(context.Background(), bundles, "ranked.csv")
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "Duo", records[1][1])
	assert.Equal(t, "Prime|Giga", records[1][3])
	assert.Equal(t, "75000", records[1][6])
}
