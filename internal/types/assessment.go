// Package types provides type definitions for the data that flows through the readiness assessment pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Role is the job track a candidate is assessing themselves against.
type Role string

// Supported roles
const (
	RoleFrontend  Role = "frontend"
	RoleBackend   Role = "backend"
	RoleFullstack Role = "fullstack"
	RoleMobile    Role = "mobile"
)

// Roles lists every supported role in display order.
var Roles = []Role{RoleFrontend, RoleBackend, RoleFullstack, RoleMobile}

// ExperienceLevel is the candidate's self-declared seniority.
type ExperienceLevel string

// Supported experience levels
const (
	LevelIntern ExperienceLevel = "intern"
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// ReadinessLevel is the tier derived from the total score.
type ReadinessLevel string

// Readiness tiers
const (
	ReadinessBeginner     ReadinessLevel = "Beginner"
	ReadinessIntermediate ReadinessLevel = "Intermediate"
	ReadinessStrong       ReadinessLevel = "Strong Candidate"
)

// SubmissionInput is the validated form submitted by a candidate.
type SubmissionInput struct {
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                Role            `json:"role"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel"`
	TechnicalSelfRating int             `json:"technicalSelfRating"`
	TechnicalMcqAnswer  string          `json:"technicalMcqAnswer"`
	HasResume           bool            `json:"hasResume"`
	ResumeText          *string         `json:"resumeText"`
	CommunicationRating int             `json:"communicationRating"`
	HasPortfolio        bool            `json:"hasPortfolio"`
	PortfolioURL        *string         `json:"portfolioUrl"`
}

// Normalize collapses empty optional strings to nil so absent and empty
// values share a single persisted representation. Other text is kept as sent.
func (in *SubmissionInput) Normalize() {
	in.ResumeText = nilIfEmpty(in.ResumeText)
	in.PortfolioURL = nilIfEmpty(in.PortfolioURL)
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// RubricResult is the deterministic score breakdown for a submission.
type RubricResult struct {
	TechnicalMcqCorrect bool           `json:"technicalMcqCorrect"`
	ScoreTechnical      int            `json:"scoreTechnical"`     // 0-40
	ScoreResume         int            `json:"scoreResume"`        // 0 or 20
	ScoreCommunication  int            `json:"scoreCommunication"` // 0-20
	ScorePortfolio      int            `json:"scorePortfolio"`     // 0 or 20
	TotalScore          int            `json:"totalScore"`         // 0-100
	ReadinessLevel      ReadinessLevel `json:"readinessLevel"`
}

// FeedbackResult is the narrative critique attached to an assessment.
type FeedbackResult struct {
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	ImprovementPlan []string `json:"improvementPlan"` // Day 1-2, Day 3-5, Day 6-7
	AIFeedback      string   `json:"aiFeedback"`
	EstimatedDays   int      `json:"estimatedDays"`
}

// AssessmentDraft is a fully assembled assessment that has not been stored yet.
type AssessmentDraft struct {
	SubmissionInput
	RubricResult
	FeedbackResult
}

// Assessment is a stored assessment record. Records are never modified after creation.
type Assessment struct {
	ID int64 `json:"id"`
	AssessmentDraft
}
