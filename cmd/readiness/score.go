package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/observability"
	"github.com/spf13/cobra"
)

var (
	scoreInput  string
	scoreFormat string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a submission without storing it",
	Long:  `Validate a submission JSON file and print its rubric breakdown. No model call or database is involved.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "Path to submission JSON, or - for stdin (required)")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "json", "Output format: json or text")
	if err := scoreCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	var (
		raw []byte
		err error
	)
	if scoreInput == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(scoreInput)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, err := assessment.Score(raw)
	if err != nil {
		return formatScoreError(err)
	}

	return render(cmd.OutOrStdout(), scoreFormat, result, func(p *observability.Printer) {
		p.PrintRubric(result)
	})
}

// render writes v as indented JSON, or through the text printer.
func render(w io.Writer, format string, v any, text func(*observability.Printer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text":
		text(observability.NewPrinter(w))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// formatScoreError lists each field problem on its own line.
func formatScoreError(err error) error {
	var ve *assessment.ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) == 0 {
		return err
	}
	msg := ve.Message
	for _, fe := range ve.Errors {
		msg += fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message)
	}
	return errors.New(msg)
}
