// Package main provides the entry point for the ESG Compass recommendation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "esg_compass",
	Short: "SDG-based company recommendation engine",
	Long:  "ESG Compass ranks companies against a user's weighted SDG preferences and risk profile, then enriches the top matches with generated narrative and media.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
