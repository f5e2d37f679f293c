// Package scoring implements the deterministic readiness rubric.
package scoring

import "github.com/jonathan/readiness-check/internal/types"

// Category weights. They sum to 100.
const (
	mcqPoints           = 15
	selfRatingPoints    = 25
	resumePoints        = 20
	communicationPoints = 20
	portfolioPoints     = 20

	minRating = 1
	maxRating = 10
)

// Tier thresholds. A total must be strictly greater than the threshold.
const (
	strongThreshold       = 80
	intermediateThreshold = 50
)

// Evaluate scores a submission. It has no failure mode: ratings outside
// [1,10] are clamped so category scores never leave their ranges.
func Evaluate(in types.SubmissionInput) types.RubricResult {
	correct := IsCorrect(in.Role, in.TechnicalMcqAnswer)

	technical := mcqScore(correct) + selfRatingScore(in.TechnicalSelfRating)
	resume := flagScore(in.HasResume, resumePoints)
	communication := communicationScore(in.CommunicationRating)
	portfolio := flagScore(in.HasPortfolio, portfolioPoints)
	total := technical + resume + communication + portfolio

	return types.RubricResult{
		TechnicalMcqCorrect: correct,
		ScoreTechnical:      technical,
		ScoreResume:         resume,
		ScoreCommunication:  communication,
		ScorePortfolio:      portfolio,
		TotalScore:          total,
		ReadinessLevel:      ReadinessFor(total),
	}
}

// ReadinessFor maps a total score to its tier. Boundary values fall into the lower tier.
func ReadinessFor(total int) types.ReadinessLevel {
	switch {
	case total > strongThreshold:
		return types.ReadinessStrong
	case total > intermediateThreshold:
		return types.ReadinessIntermediate
	default:
		return types.ReadinessBeginner
	}
}

func mcqScore(correct bool) int {
	return flagScore(correct, mcqPoints)
}

func selfRatingScore(rating int) int {
	return scaled(rating, selfRatingPoints)
}

func communicationScore(rating int) int {
	return scaled(rating, communicationPoints)
}

func flagScore(set bool, points int) int {
	if set {
		return points
	}
	return 0
}

// scaled converts a 1-10 rating to a share of points, rounding half up.
func scaled(rating, points int) int {
	rating = clampRating(rating)
	return (rating*points + maxRating/2) / maxRating
}

func clampRating(rating int) int {
	if rating < minRating {
		return minRating
	}
	if rating > maxRating {
		return maxRating
	}
	return rating
}
