// Package main is the entry point for the combo-pricing CLI.
package main

import (
	"os"

	"combo-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
