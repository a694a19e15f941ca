package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"combo-pricing/adapters/csvexport"
	"combo-pricing/core/engine"
	"combo-pricing/core/types"
	"combo-pricing/internal/config"
)

var (
	rankProducts   []string
	rankPlans      []string
	rankRequireAll bool
	rankSort       string
	rankLimit      int
	rankDedupe     bool
	rankCSV        string
)

// rankCmd enumerates, prices and ranks bundle combinations
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Enumerate and rank bundle combinations",
	Long: `Enumerate every admissible line combination of the selected combined
products (all products when --product is not given), price each one, and
print them ranked by the selected key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		limit := rankLimit
		if !cmd.Flags().Changed("limit") {
			limit = config.Get().Pricing.DefaultLimit
		}

		eng := newEngine(s)
		results, err := eng.EnumerateCombinations(cmd.Context(), engine.Request{
			ProductIDs:        rankProducts,
			RequiredPlanNames: rankPlans,
			RequireAll:        rankRequireAll,
			SortBy:            types.SortKey(rankSort),
			Limit:             limit,
			DedupeByProduct:   rankDedupe,
		})
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("no admissible combinations")
			return nil
		}
		printBundles(results)

		if rankCSV != "" {
			exporter := csvexport.New(s, config.Get().Export.Directory)
			path, err := exporter.ExportPricings(cmd.Context(), results, rankCSV)
			if err != nil {
				return err
			}
			fmt.Printf("\nwrote %s\n", path)
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().StringSliceVar(&rankProducts, "product", nil, "combined product id (repeatable; default all)")
	rankCmd.Flags().StringSliceVar(&rankPlans, "require-plan", nil, "required plan name (repeatable)")
	rankCmd.Flags().BoolVar(&rankRequireAll, "require-all", false, "require every named plan instead of any")
	rankCmd.Flags().StringVar(&rankSort, "sort", string(types.SortMinFinalPrice),
		"sort key: max_discount, min_final_price or max_base_fee")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "maximum results (0 = unlimited)")
	rankCmd.Flags().BoolVar(&rankDedupe, "dedupe", false, "keep only the best combination per product")
	rankCmd.Flags().StringVar(&rankCSV, "csv", "", "also write results to this CSV file in the export directory")
}

func printBundles(results []types.PricedBundle) {
	for i, b := range results {
		fmt.Printf("%3d. %s (%s)\n", i+1, b.ProductName, b.CompanyName)
		fmt.Printf("     plans:    %s\n", strings.Join(b.PlanNames(), ", "))
		fmt.Printf("     base fee: %d  discount: %d  final: %d\n",
			b.BaseFee, b.DiscountTotal, b.FinalPrice)
	}
}
