package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jonathan/readiness-check/internal/llm"
	jsonschema "github.com/jonathan/readiness-check/internal/schemas"
	"github.com/jonathan/readiness-check/internal/types"
	"github.com/jonathan/readiness-check/schemas"
)

// Outcome tags how much of a model response could be used.
type Outcome string

// Outcome values
const (
	OutcomeComplete Outcome = "complete"
	OutcomePartial  Outcome = "partial"
	OutcomeFailed   Outcome = "failed"
)

// Field names in the model response contract.
const (
	FieldStrengths       = "strengths"
	FieldGaps            = "gaps"
	FieldImprovementPlan = "improvement_plan"
	FieldFeedback        = "feedback"
	FieldEstimatedDays   = "estimated_days"
)

// AllFields lists the response fields in contract order.
var AllFields = []string{FieldStrengths, FieldGaps, FieldImprovementPlan, FieldFeedback, FieldEstimatedDays}

const maxListItems = 3

var responseSchema = jsonschema.MustCompile(schemas.Feedback())

// Result is the outcome of one synthesis. Feedback is always fully populated.
type Result struct {
	Outcome  Outcome
	Feedback types.FeedbackResult
	// Substituted lists fields replaced with their default.
	Substituted []string
	// Drift lists fields that broke the response schema, including repaired ones.
	Drift []string
	// Err is the call or decode failure behind OutcomeFailed.
	Err error
}

// Defaults returns the fallback critique for a total score.
func Defaults(totalScore int) types.FeedbackResult {
	return types.FeedbackResult{
		Strengths:       defaultStrengths(),
		Gaps:            defaultGaps(),
		ImprovementPlan: defaultImprovementPlan(),
		AIFeedback:      defaultFeedback,
		EstimatedDays:   defaultEstimatedDays(totalScore),
	}
}

const defaultFeedback = "Keep learning and practicing!"

func defaultStrengths() []string { return []string{"Ambitious attitude"} }

func defaultGaps() []string { return []string{"General technical review needed"} }

func defaultImprovementPlan() []string {
	return []string{"Review basics", "Build a project", "Practice mock interviews"}
}

func defaultEstimatedDays(totalScore int) int {
	if totalScore > 80 {
		return 7
	}
	return 14
}

// Failed builds a full-default result for err.
func Failed(totalScore int, err error) Result {
	return Result{
		Outcome:     OutcomeFailed,
		Feedback:    Defaults(totalScore),
		Substituted: append([]string(nil), AllFields...),
		Err:         err,
	}
}

// Parse salvages a critique from raw model text, substituting defaults per field.
func Parse(raw string, totalScore int) Result {
	cleaned := llm.CleanJSONObject(raw)
	if cleaned == "" {
		return Failed(totalScore, errors.New("response contains no JSON"))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return Failed(totalScore, fmt.Errorf("failed to decode response: %w", err))
	}
	if fields == nil {
		return Failed(totalScore, errors.New("response is not a JSON object"))
	}

	res := Result{Outcome: OutcomeComplete}
	var ve *jsonschema.ValidationError
	if err := responseSchema.Validate([]byte(cleaned)); errors.As(err, &ve) {
		res.Drift = topLevel(ve.Fields())
	}

	substitute := func(field string) {
		res.Substituted = append(res.Substituted, field)
	}

	if list, ok := parseList(fields[FieldStrengths]); ok {
		res.Feedback.Strengths = list
	} else {
		res.Feedback.Strengths = defaultStrengths()
		substitute(FieldStrengths)
	}
	if list, ok := parseList(fields[FieldGaps]); ok {
		res.Feedback.Gaps = list
	} else {
		res.Feedback.Gaps = defaultGaps()
		substitute(FieldGaps)
	}
	if list, ok := parseList(fields[FieldImprovementPlan]); ok {
		res.Feedback.ImprovementPlan = list
	} else {
		res.Feedback.ImprovementPlan = defaultImprovementPlan()
		substitute(FieldImprovementPlan)
	}
	if text, ok := parseText(fields[FieldFeedback]); ok {
		res.Feedback.AIFeedback = text
	} else {
		res.Feedback.AIFeedback = defaultFeedback
		substitute(FieldFeedback)
	}
	if days, ok := parseDays(fields[FieldEstimatedDays]); ok {
		res.Feedback.EstimatedDays = days
	} else {
		res.Feedback.EstimatedDays = defaultEstimatedDays(totalScore)
		substitute(FieldEstimatedDays)
	}

	if len(res.Substituted) > 0 {
		res.Outcome = OutcomePartial
	}
	return res
}

// topLevel reduces schema paths such as "strengths.2" to their response field, once each.
func topLevel(paths []string) []string {
	var out []string
	for _, p := range paths {
		field, _, _ := strings.Cut(p, ".")
		if !slices.Contains(out, field) {
			out = append(out, field)
		}
	}
	return out
}

// parseList accepts an array of strings, dropping blanks and keeping at most three.
func parseList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	list := make([]string, 0, maxListItems)
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(list) < maxListItems {
			list = append(list, s)
		}
	}
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

func parseText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func parseDays(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
