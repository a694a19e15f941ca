package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"combo-pricing/core/types"
	"combo-pricing/internal/errors"
)

// reportCmd prints the three product-level pricing summaries
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the catalog's standout combined products",
	Long: `Price every combined product's representative bundle and report the
product with the largest total discount, the cheapest positive final price,
and the highest pre-discount base fee.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		eng := newEngine(s)
		ctx := cmd.Context()

		sections := []struct {
			title string
			run   func(context.Context) (*types.ProductSummary, error)
		}{
			{"largest total discount", eng.TopByDiscount},
			{"cheapest final price", eng.CheapestFinalPrice},
			{"highest base fee", eng.HighestBaseFee},
		}
		for _, section := range sections {
			summary, err := section.run(ctx)
			if errors.IsType(err, errors.TypeEmptyCatalog) {
				fmt.Printf("%s: %v\n", section.title, err)
				continue
			}
			if err != nil {
				return err
			}
			printSummary(section.title, summary)
		}
		return nil
	},
}

func printSummary(title string, s *types.ProductSummary) {
	fmt.Printf("%s:\n", title)
	fmt.Printf("  %s (%s)\n", s.ProductName, s.CompanyName)
	fmt.Printf("  plans: %s\n", strings.Join(s.PlanNames, ", "))
	fmt.Printf("  base fee %d, discount %d, final price %d\n",
		s.BaseFee, s.DiscountTotal, s.FinalPrice)
}
