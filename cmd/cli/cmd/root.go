// Package cmd provides the CLI commands for combo-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"combo-pricing/core/engine"
	"combo-pricing/core/enumerate"
	"combo-pricing/db/store"
	"combo-pricing/internal/config"
	"combo-pricing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "combo-pricing",
	Short: "Price telecom combined-product bundles",
	Long: `combo-pricing maintains a catalog of telecom combined products
(mobile + internet + TV bundles) and answers pricing questions over it.

It enumerates every admissible line combination of a bundle, applies the
bundle's discounts with their plan- and line-count-specific overrides, and
ranks the results.

Examples:
  combo-pricing seed ./seeds
  combo-pricing rank --sort min_final_price --limit 10
  combo-pricing price 3f2a9c...
  combo-pricing report`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.combo-pricing.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	// .env values are overlay-only; missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.Database.Driver = "mysql"
		cfg.Database.DSN = dsn
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openStore opens the configured catalog database
func openStore() (*store.Store, error) {
	db, err := store.Open(config.Get().Database)
	if err != nil {
		return nil, err
	}
	return store.New(db, nil), nil
}

// newEngine builds an engine with the configured ceilings
func newEngine(s *store.Store) *engine.Engine {
	cfg := config.Get().Pricing
	return engine.New(s,
		engine.WithEnumerator(enumerate.New(cfg.MaxLinesPerType, cfg.MaxBundles)))
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("combo-pricing version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("database driver: %s\n", cfg.Database.Driver)
		if cfg.Database.Driver == "mysql" {
			fmt.Println("database dsn:    (set)")
		} else {
			fmt.Printf("database path:   %s\n", cfg.Database.Path)
		}
		fmt.Printf("max lines/type:  %d\n", cfg.Pricing.MaxLinesPerType)
		fmt.Printf("max bundles:     %d\n", cfg.Pricing.MaxBundles)
		fmt.Printf("default limit:   %d\n", cfg.Pricing.DefaultLimit)
		fmt.Printf("export dir:      %s\n", cfg.Export.Directory)
		return nil
	},
}
