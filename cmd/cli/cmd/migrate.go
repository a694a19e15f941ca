package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the catalog schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.Migrate(); err != nil {
			return err
		}
		if err := s.SeedCompanies(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("catalog schema is up to date")
		return nil
	},
}
