package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"combo-pricing/internal/errors"
)

// priceCmd prices a single combined product's representative bundle
var priceCmd = &cobra.Command{
	Use:   "price <combined-product-id>",
	Short: "Price one combined product's representative bundle",
	Long: `Price the representative bundle of one combined product: the most
expensive eligible plan of each service type the product offers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		priced, err := newEngine(s).PriceSingleProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if priced == nil {
			return errors.NotFound("combined product", args[0])
		}

		fmt.Printf("%s (%s)\n", priced.ProductName, priced.CompanyName)
		fmt.Printf("plans:          %s\n", strings.Join(priced.PlanNames(), ", "))
		fmt.Printf("base fee:       %d\n", priced.BaseFee)
		fmt.Printf("discount total: %d\n", priced.DiscountTotal)
		fmt.Printf("final price:    %d\n", priced.FinalPrice)

		discounts, err := s.Discounts(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(discounts) > 0 {
			fmt.Println("discounts:")
			for _, d := range discounts {
				fmt.Printf("  %s (%s)\n", d.Name, d.Classification())
			}
		}
		return nil
	},
}
