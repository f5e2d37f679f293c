// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/readiness-check/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRubric outputs the category breakdown with a bar per category.
func (p *Printer) PrintRubric(r types.RubricResult) {
	var sb strings.Builder

	mcq := "incorrect"
	if r.TechnicalMcqCorrect {
		mcq = "correct"
	}
	sb.WriteString(fmt.Sprintf("Quiz answer:    %s\n\n", mcq))
	sb.WriteString(scoreLine("Technical", r.ScoreTechnical, 40))
	sb.WriteString(scoreLine("Resume", r.ScoreResume, 20))
	sb.WriteString(scoreLine("Communication", r.ScoreCommunication, 20))
	sb.WriteString(scoreLine("Portfolio", r.ScorePortfolio, 20))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total:          %d/100 (%s)", r.TotalScore, r.ReadinessLevel))

	p.printBox("READINESS SCORE", sb.String())
}

// PrintFeedback outputs the narrative critique of an assessment.
func (p *Printer) PrintFeedback(fb types.FeedbackResult) {
	var sb strings.Builder

	writeList(&sb, "Strengths", fb.Strengths)
	writeList(&sb, "Gaps", fb.Gaps)
	writeList(&sb, "Improvement plan", fb.ImprovementPlan)
	if fb.AIFeedback != "" {
		sb.WriteString(fb.AIFeedback + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("Estimated days to ready: %d", fb.EstimatedDays))

	p.printBox("FEEDBACK", sb.String())
}

// PrintAssessment outputs a stored assessment.
func (p *Printer) PrintAssessment(a *types.Assessment) {
	if a == nil {
		return
	}
	//nolint:errcheck // writing to stdout; errors are not recoverable
	fmt.Fprintf(p.out, "Assessment #%d: %s <%s>, %s %s\n", a.ID, a.Name, a.Email, a.ExperienceLevel, a.Role)
	p.PrintRubric(a.RubricResult)
	p.PrintFeedback(a.FeedbackResult)
}

func scoreLine(label string, score, limit int) string {
	filled := 0
	if limit > 0 {
		filled = min(max(score, 0), limit) * barWidth / limit
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%-15s %s %2d/%d\n", label+":", bar, score, limit)
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	sb.WriteString("\n")
}
