package scoring

import (
	"testing"

	"github.com/jonathan/readiness-check/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topInput() types.SubmissionInput {
	return types.SubmissionInput{
		Name:                "Ada Lovelace",
		Email:               "ada@example.com",
		Role:                types.RoleFrontend,
		ExperienceLevel:     types.LevelJunior,
		TechnicalSelfRating: 10,
		TechnicalMcqAnswer:  "Side effects",
		HasResume:           true,
		CommunicationRating: 10,
		HasPortfolio:        true,
	}
}

func TestEvaluate_PerfectFrontend(t *testing.T) {
	got := Evaluate(topInput())

	assert.True(t, got.TechnicalMcqCorrect)
	assert.Equal(t, 40, got.ScoreTechnical)
	assert.Equal(t, 20, got.ScoreResume)
	assert.Equal(t, 20, got.ScoreCommunication)
	assert.Equal(t, 20, got.ScorePortfolio)
	assert.Equal(t, 100, got.TotalScore)
	assert.Equal(t, types.ReadinessStrong, got.ReadinessLevel)
}

func TestEvaluate_WrongAnswerLowRating(t *testing.T) {
	in := topInput()
	in.TechnicalMcqAnswer = "wrong"
	in.TechnicalSelfRating = 4

	got := Evaluate(in)

	assert.False(t, got.TechnicalMcqCorrect)
	assert.Equal(t, 0, mcqScore(got.TechnicalMcqCorrect))
	assert.Equal(t, 10, selfRatingScore(4))
	assert.Equal(t, 10, got.ScoreTechnical)
	assert.Equal(t, 70, got.TotalScore)
	assert.Equal(t, types.ReadinessIntermediate, got.ReadinessLevel)
}

func TestEvaluate_MinimumEverything(t *testing.T) {
	in := types.SubmissionInput{
		Role:                types.RoleMobile,
		ExperienceLevel:     types.LevelIntern,
		TechnicalSelfRating: 1,
		TechnicalMcqAnswer:  "View",
		CommunicationRating: 1,
	}

	got := Evaluate(in)

	assert.Equal(t, 3, got.ScoreTechnical)
	assert.Equal(t, 0, got.ScoreResume)
	assert.Equal(t, 2, got.ScoreCommunication)
	assert.Equal(t, 0, got.ScorePortfolio)
	assert.Equal(t, 5, got.TotalScore)
	assert.Equal(t, types.ReadinessBeginner, got.ReadinessLevel)
}

func TestReadinessFor_Boundaries(t *testing.T) {
	tests := []struct {
		total int
		want  types.ReadinessLevel
	}{
		{0, types.ReadinessBeginner},
		{50, types.ReadinessBeginner},
		{51, types.ReadinessIntermediate},
		{80, types.ReadinessIntermediate},
		{81, types.ReadinessStrong},
		{100, types.ReadinessStrong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadinessFor(tt.total), "total=%d", tt.total)
	}
}

func TestSelfRatingScore_RoundsHalfUp(t *testing.T) {
	want := map[int]int{1: 3, 2: 5, 3: 8, 4: 10, 5: 13, 6: 15, 7: 18, 8: 20, 9: 23, 10: 25}
	for rating, expected := range want {
		assert.Equal(t, expected, selfRatingScore(rating), "rating=%d", rating)
	}
}

func TestCommunicationScore_IsTwicePerPoint(t *testing.T) {
	for rating := 1; rating <= 10; rating++ {
		assert.Equal(t, rating*2, communicationScore(rating))
	}
}

func TestEvaluate_ClampsOutOfRangeRatings(t *testing.T) {
	in := topInput()
	in.TechnicalSelfRating = 42
	in.CommunicationRating = -3

	got := Evaluate(in)

	assert.Equal(t, 40, got.ScoreTechnical)
	assert.Equal(t, 2, got.ScoreCommunication)
}

func TestEvaluate_ScoresStayInRange(t *testing.T) {
	for _, role := range types.Roles {
		answer, ok := AnswerFor(role)
		require.True(t, ok)

		for _, mcq := range []string{answer, "nope"} {
			for tech := 1; tech <= 10; tech++ {
				for comm := 1; comm <= 10; comm++ {
					for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
						got := Evaluate(types.SubmissionInput{
							Role:                role,
							TechnicalMcqAnswer:  mcq,
							TechnicalSelfRating: tech,
							CommunicationRating: comm,
							HasResume:           flags[0],
							HasPortfolio:        flags[1],
						})

						assert.GreaterOrEqual(t, got.ScoreTechnical, 0)
						assert.LessOrEqual(t, got.ScoreTechnical, 40)
						assert.Contains(t, []int{0, 20}, got.ScoreResume)
						assert.GreaterOrEqual(t, got.ScoreCommunication, 0)
						assert.LessOrEqual(t, got.ScoreCommunication, 20)
						assert.Contains(t, []int{0, 20}, got.ScorePortfolio)
						assert.Equal(t, got.ScoreTechnical+got.ScoreResume+got.ScoreCommunication+got.ScorePortfolio, got.TotalScore)
						assert.LessOrEqual(t, got.TotalScore, 100)
						assert.Equal(t, ReadinessFor(got.TotalScore), got.ReadinessLevel)
					}
				}
			}
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := topInput()
	in.TechnicalSelfRating = 7
	in.HasPortfolio = false

	assert.Equal(t, Evaluate(in), Evaluate(in))
}

func TestEvaluate_ExactMatchOnly(t *testing.T) {
	in := topInput()

	in.TechnicalMcqAnswer = "side effects"
	assert.False(t, Evaluate(in).TechnicalMcqCorrect)

	in.TechnicalMcqAnswer = " Side effects"
	assert.False(t, Evaluate(in).TechnicalMcqCorrect)
}
