package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSubmissionInput_Normalize(t *testing.T) {
	in := SubmissionInput{
		ResumeText:   strPtr(""),
		PortfolioURL: strPtr(""),
	}
	in.Normalize()
	assert.Nil(t, in.ResumeText)
	assert.Nil(t, in.PortfolioURL)

	in = SubmissionInput{ResumeText: strPtr("  ")}
	in.Normalize()
	require.NotNil(t, in.ResumeText, "whitespace is submitted text, not an empty value")
	assert.Equal(t, "  ", *in.ResumeText)

	in = SubmissionInput{
		ResumeText:   strPtr("Built things"),
		PortfolioURL: strPtr("https://example.com"),
	}
	in.Normalize()
	require.NotNil(t, in.ResumeText)
	require.NotNil(t, in.PortfolioURL)
	assert.Equal(t, "https://example.com", *in.PortfolioURL)
}

func TestAssessment_JSONIsFlat(t *testing.T) {
	rec := Assessment{
		ID: 7,
		AssessmentDraft: AssessmentDraft{
			SubmissionInput: SubmissionInput{Name: "Ada", Role: RoleBackend, HasPortfolio: true},
			RubricResult:    RubricResult{TotalScore: 64, ReadinessLevel: ReadinessIntermediate},
			FeedbackResult:  FeedbackResult{Strengths: []string{"Curious"}, EstimatedDays: 14},
		},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.EqualValues(t, 7, fields["id"])
	assert.Equal(t, "Ada", fields["name"])
	assert.Equal(t, "backend", fields["role"])
	assert.Equal(t, "Intermediate", fields["readinessLevel"])
	assert.EqualValues(t, 64, fields["totalScore"])
	assert.EqualValues(t, 14, fields["estimatedDays"])
	assert.Contains(t, fields, "portfolioUrl")
	assert.Nil(t, fields["portfolioUrl"])
	assert.NotContains(t, fields, "SubmissionInput")
}
