package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"combo-pricing/adapters/csvexport"
	"combo-pricing/internal/config"
)

var exportDir string

// exportCmd dumps the catalog tables to CSV files
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog tables to CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = config.Get().Export.Directory
		}
		paths, err := csvexport.New(s, dir).ExportCatalog(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default from config)")
}
