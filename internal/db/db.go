// Package db provides PostgreSQL storage for assessments.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ assessment.Store = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the assessments table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
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
func (db *DB) CreateAssessment(ctx context.Context, draft *types.AssessmentDraft) (*types.Assessment, error) {
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

	var id int64
	err = db.pool.QueryRow(ctx,
		`INSERT INTO assessments (`+assessmentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING id`,
		draft.Name, draft.Email, string(draft.Role), string(draft.ExperienceLevel),
		draft.TechnicalSelfRating, draft.TechnicalMcqAnswer, draft.TechnicalMcqCorrect,
		draft.HasResume, draft.ResumeText, draft.CommunicationRating, draft.HasPortfolio, draft.PortfolioURL,
		draft.ScoreTechnical, draft.ScoreResume, draft.ScoreCommunication, draft.ScorePortfolio,
		draft.TotalScore, string(draft.ReadinessLevel),
		strengths, gaps, plan, draft.AIFeedback, draft.EstimatedDays,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert assessment: %w", err)
	}

	return &types.Assessment{ID: id, AssessmentDraft: *draft}, nil
}

// GetAssessment retrieves an assessment by id
func (db *DB) GetAssessment(ctx context.Context, id int64) (*types.Assessment, error) {
	var a types.Assessment
	var role, level, readiness string
	var strengths, gaps, plan []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, `+assessmentColumns+` FROM assessments WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.Name, &a.Email, &role, &level,
		&a.TechnicalSelfRating, &a.TechnicalMcqAnswer, &a.TechnicalMcqCorrect,
		&a.HasResume, &a.ResumeText, &a.CommunicationRating, &a.HasPortfolio, &a.PortfolioURL,
		&a.ScoreTechnical, &a.ScoreResume, &a.ScoreCommunication, &a.ScorePortfolio, &a.TotalScore, &readiness,
		&strengths, &gaps, &plan, &a.AIFeedback, &a.EstimatedDays,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assessment.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assessment %d: %w", id, err)
	}

	a.Role = types.Role(role)
	a.ExperienceLevel = types.ExperienceLevel(level)
	a.ReadinessLevel = types.ReadinessLevel(readiness)

	if err := json.Unmarshal(strengths, &a.Strengths); err != nil {
		return nil, fmt.Errorf("failed to unmarshal strengths: %w", err)
	}
	if err := json.Unmarshal(gaps, &a.Gaps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gaps: %w", err)
	}
	if err := json.Unmarshal(plan, &a.ImprovementPlan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal improvement plan: %w", err)
	}

	return &a, nil
}
