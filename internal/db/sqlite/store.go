// Package sqlite stores assessments in an embedded SQLite database.
// It backs local development and tests; production uses the PostgreSQL store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/types"

	_ "modernc.org/sqlite" // driver: sqlite
)

//go:embed schema.sql
var schemaSQL string

// Store implements assessment.Store on database/sql.
type Store struct {
	conn *sql.DB
}

var _ assessment.Store = (*Store)(nil)

// Open connects to dsn, for example "file:readiness.db" or ":memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return New(conn), nil
}

// New wraps an existing connection.
func New(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Close closes the DB connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Migrate creates the assessments table if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const assessmentColumns = `name, email, role, experience_level,
	technical_self_rating, technical_mcq_answer, technical_mcq_correct,
	has_resume, resume_text, communication_rating, has_portfolio, portfolio_url,
	score_technical, score_resume, score_communication, score_portfolio, total_score, readiness_level,
	strengths, gaps, improvement_plan, ai_feedback, estimated_days`

// CreateAssessment inserts an assessment and returns it with its assigned id
func (s *Store) CreateAssessment(ctx context.Context, draft *types.AssessmentDraft) (*types.Assessment, error) {
	strengths, err := json.Marshal(draft.Strengths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	gaps, err := json.Marshal(draft.Gaps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}
	plan, err := json.Marshal(draft.ImprovementPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal improvement plan: %w", err)
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO assessments (`+assessmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.Name, draft.Email, string(draft.Role), string(draft.ExperienceLevel),
		draft.TechnicalSelfRating, draft.TechnicalMcqAnswer, draft.TechnicalMcqCorrect,
		draft.HasResume, nullString(draft.ResumeText), draft.CommunicationRating,
		draft.HasPortfolio, nullString(draft.PortfolioURL),
		draft.ScoreTechnical, draft.ScoreResume, draft.ScoreCommunication, draft.ScorePortfolio,
		draft.TotalScore, string(draft.ReadinessLevel),
		string(strengths), string(gaps), string(plan), draft.AIFeedback, draft.EstimatedDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert assessment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment id: %w", err)
	}
	return &types.Assessment{ID: id, AssessmentDraft: *draft}, nil
}

// GetAssessment retrieves an assessment by id
func (s *Store) GetAssessment(ctx context.Context, id int64) (*types.Assessment, error) {
	var a types.Assessment
	var role, level, readiness string
	var resume, portfolio sql.NullString
	var strengths, gaps, plan string

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, `+assessmentColumns+` FROM assessments WHERE id = ?`, id,
	).Scan(
		&a.ID, &a.Name, &a.Email, &role, &level,
		&a.TechnicalSelfRating, &a.TechnicalMcqAnswer, &a.TechnicalMcqCorrect,
		&a.HasResume, &resume, &a.CommunicationRating, &a.HasPortfolio, &portfolio,
		&a.ScoreTechnical, &a.ScoreResume, &a.ScoreCommunication, &a.ScorePortfolio, &a.TotalScore, &readiness,
		&strengths, &gaps, &plan, &a.AIFeedback, &a.EstimatedDays,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assessment.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assessment %d: %w", id, err)
	}

	a.Role = types.Role(role)
	a.ExperienceLevel = types.ExperienceLevel(level)
	a.ReadinessLevel = types.ReadinessLevel(readiness)
	a.ResumeText = stringPtr(resume)
	a.PortfolioURL = stringPtr(portfolio)

	if err := json.Unmarshal([]byte(strengths), &a.Strengths); err != nil {
		return nil, fmt.Errorf("failed to unmarshal strengths: %w", err)
	}
	if err := json.Unmarshal([]byte(gaps), &a.Gaps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gaps: %w", err)
	}
	if err := json.Unmarshal([]byte(plan), &a.ImprovementPlan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal improvement plan: %w", err)
	}

	return &a, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
