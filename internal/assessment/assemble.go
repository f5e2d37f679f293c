// Package assessment runs a submission through scoring, feedback and storage.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	jsonschema "github.com/jonathan/readiness-check/internal/schemas"
	"github.com/jonathan/readiness-check/internal/types"
	"github.com/jonathan/readiness-check/schemas"
)

// Store persists assessments. Records are append-only.
type Store interface {
	// CreateAssessment stores draft under a new, unique, increasing id.
	CreateAssessment(ctx context.Context, draft *types.AssessmentDraft) (*types.Assessment, error)
	// GetAssessment returns ErrNotFound when no record has id.
	GetAssessment(ctx context.Context, id int64) (*types.Assessment, error)
}

// Assemble merges the three parts of an assessment. The draft shares no slices with its inputs.
func Assemble(in types.SubmissionInput, rubric types.RubricResult, fb types.FeedbackResult) *types.AssessmentDraft {
	fb.Strengths = slices.Clone(fb.Strengths)
	fb.Gaps = slices.Clone(fb.Gaps)
	fb.ImprovementPlan = slices.Clone(fb.ImprovementPlan)
	return &types.AssessmentDraft{
		SubmissionInput: in,
		RubricResult:    rubric,
		FeedbackResult:  fb,
	}
}

var submissionSchema = jsonschema.MustCompile(schemas.Submission())

// submissionWire decodes ratings as numbers so whole floats such as 5.0, which
// the schema accepts as integers, are not rejected by the int fields.
type submissionWire struct {
	types.SubmissionInput
	TechnicalSelfRating json.Number `json:"technicalSelfRating"`
	CommunicationRating json.Number `json:"communicationRating"`
}

// DecodeSubmission validates a raw body against the shared submission schema
// and decodes it. Optional strings are normalized.
func DecodeSubmission(raw []byte) (types.SubmissionInput, error) {
	if err := submissionSchema.Validate(raw); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return types.SubmissionInput{}, newInputError(ve)
		}
		return types.SubmissionInput{}, fmt.Errorf("failed to validate submission: %w", err)
	}

	var wire submissionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		field := jsonschema.RootField
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			field = te.Field
		}
		return types.SubmissionInput{}, invalidField(field, "Invalid value")
	}

	in := wire.SubmissionInput
	var err error
	if in.TechnicalSelfRating, err = rating("technicalSelfRating", wire.TechnicalSelfRating); err != nil {
		return types.SubmissionInput{}, err
	}
	if in.CommunicationRating, err = rating("communicationRating", wire.CommunicationRating); err != nil {
		return types.SubmissionInput{}, err
	}
	in.Normalize()
	return in, nil
}

// rating converts a whole-valued JSON number in [1,10].
func rating(field string, n json.Number) (int, error) {
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < 1 || f > 10 {
		return 0, invalidField(field, "Rating must be a whole number from 1 to 10")
	}
	return int(f), nil
}
