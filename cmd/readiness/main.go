// Package main provides the entry point for the readiness assessment API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "readiness",
	Short:        "Career readiness assessment server",
	Long:         "readiness scores candidate self-assessments against a fixed rubric, attaches model-written feedback and stores the result behind a REST API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (default: readiness.yaml in . or ./config)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
