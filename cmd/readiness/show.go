package main

import (
	"fmt"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/config"
	"github.com/jonathan/readiness-check/internal/observability"
	"github.com/spf13/cobra"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "text", "Output format: json or text")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := assessment.ParseID(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore()

	record, err := st.GetAssessment(ctx, id)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), showFormat, record, func(p *observability.Printer) {
		p.PrintAssessment(record)
	})
}
