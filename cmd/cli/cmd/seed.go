package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"combo-pricing/adapters/hclseed"
)

// seedCmd loads catalog seed files into the database
var seedCmd = &cobra.Command{
	Use:   "seed <path>",
	Short: "Load HCL seed files into the catalog",
	Long: `Load catalog seed files. The path may be a single .hcl file or a
directory, in which case every .hcl file under it is applied in path order.
Seeding is idempotent: identifiers are derived from record content, so
re-applying the same files updates rows in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.Migrate(); err != nil {
			return err
		}

		loader := hclseed.New(s)

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		var stats *hclseed.Stats
		if info.IsDir() {
			stats, err = loader.LoadDir(cmd.Context(), args[0])
		} else {
			stats, err = loader.LoadFile(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("seeded %d companies, %d plans, %d products (%d eligibilities, %d discounts, %d benefits)\n",
			stats.Companies, stats.Plans, stats.Products,
			stats.Eligibilities, stats.Discounts, stats.Benefits)
		return nil
	},
}
