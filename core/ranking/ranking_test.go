package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combo-pricing/core/types"
	"combo-pricing/internal/errors"
)

func priced(productID string, base, discount int64) types.PricedBundle {
	return types.PricedBundle{
		ProductID:     productID,
		ProductName:   "product " + productID,
		BaseFee:       base,
		DiscountTotal: discount,
		FinalPrice:    base - discount,
	}
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		name string
		key  types.SortKey
		want []string
	}{
		{"max discount first", types.SortMaxDiscount, []string{"b", "a", "c"}},
		{"min final price first", types.SortMinFinalPrice, []string{"c", "b", "a"}},
		{"max base fee first", types.SortMaxBaseFee, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundles := []types.PricedBundle{
				priced("a", 90000, 5000),  // final 85000
				priced("b", 60000, 20000), // final 40000
				priced("c", 30000, 10000), // final 20000
			}
			Sort(bundles, tt.key)
			got := make([]string, len(bundles))
			for i, b := range bundles {
				got[i] = b.ProductID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	first := priced("a", 50000, 1000)
	first.ProductName = "first"
	second := priced("b", 50000, 1000)
	second.ProductName = "second"

	bundles := []types.PricedBundle{first, second}
	Sort(bundles, types.SortMaxDiscount)

	assert.Equal(t, "first", bundles[0].ProductName)
	assert.Equal(t, "second", bundles[1].ProductName)
}

func TestDedupeByProductKeepsBestRanked(t *testing.T) {
	bundles := []types.PricedBundle{
		priced("a", 50000, 9000),
		priced("b", 40000, 8000),
		priced("a", 50000, 7000),
		priced("b", 40000, 6000),
	}

	got := DedupeByProduct(bundles)
	require.Len(t, got, 2)
	assert.Equal(t, int64(9000), got[0].DiscountTotal)
	assert.Equal(t, int64(8000), got[1].DiscountTotal)
}

func TestTruncate(t *testing.T) {
	bundles := []types.PricedBundle{priced("a", 1, 0), priced("b", 2, 0), priced("c", 3, 0)}

	assert.Len(t, Truncate(bundles, 2), 2)
	assert.Len(t, Truncate(bundles, 0), 3)
	assert.Len(t, Truncate(bundles, 10), 3)
}

func TestReducers(t *testing.T) {
	pricings := []types.PricedBundle{
		priced("a", 90000, 5000),
		priced("b", 60000, 20000),
		priced("c", 30000, 10000),
	}

	top, err := TopByDiscount(pricings)
	require.NoError(t, err)
	assert.Equal(t, "b", top.ProductID)

	cheapest, err := CheapestFinalPrice(pricings)
	require.NoError(t, err)
	assert.Equal(t, "c", cheapest.ProductID)

	highest, err := HighestBaseFee(pricings)
	require.NoError(t, err)
	assert.Equal(t, "a", highest.ProductID)
}

func TestCheapestFinalPriceIgnoresNonPositive(t *testing.T) {
	pricings := []types.PricedBundle{
		priced("free", 10000, 10000),    // final 0
		priced("negative", 5000, 20000), // final -15000
		priced("paid", 60000, 10000),    // final 50000
	}

	got, err := CheapestFinalPrice(pricings)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.ProductID)
}

func TestReducersEmptyCatalog(t *testing.T) {
	_, err := TopByDiscount(nil)
	assert.True(t, errors.IsType(err, errors.TypeEmptyCatalog))

	_, err = HighestBaseFee(nil)
	assert.True(t, errors.IsType(err, errors.TypeEmptyCatalog))

	// all products free: nothing has a positive final price
	_, err = CheapestFinalPrice([]types.PricedBundle{priced("free", 1000, 1000)})
	assert.True(t, errors.IsType(err, errors.TypeEmptyCatalog))
}
