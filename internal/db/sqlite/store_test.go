package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/scoring"
	"github.com/jonathan/readiness-check/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, "file:"+filepath.Join(t.TempDir(), "readiness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func testDraft(portfolio *string) *types.AssessmentDraft {
	in := types.SubmissionInput{
		Name:                "Grace Hopper",
		Email:               "grace@example.com",
		Role:                types.RoleMobile,
		ExperienceLevel:     types.LevelIntern,
		TechnicalSelfRating: 3,
		TechnicalMcqAnswer:  "FlatList",
		HasResume:           false,
		CommunicationRating: 9,
		HasPortfolio:        portfolio != nil,
		PortfolioURL:        portfolio,
	}
	rubric := scoring.Evaluate(in)
	return assessment.Assemble(in, rubric, types.FeedbackResult{
		Strengths:       []string{"Fast learner", "Communicates clearly", "Curious"},
		Gaps:            []string{"No resume"},
		ImprovementPlan: []string{"Day 1-2: draft resume", "Day 3-5: build app", "Day 6-7: mock interview"},
		AIFeedback:      "Great start.",
		EstimatedDays:   21,
	})
}

func TestStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	url := "https://grace.dev"
	created, err := store.CreateAssessment(ctx, testDraft(&url))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := store.GetAssessment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestStore_NullOptionals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateAssessment(ctx, testDraft(nil))
	require.NoError(t, err)

	got, err := store.GetAssessment(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResumeText)
	assert.Nil(t, got.PortfolioURL)
	assert.Equal(t, created, got)
}

func TestStore_GetNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetAssessment(context.Background(), 99999)
	assert.ErrorIs(t, err, assessment.ErrNotFound)
}

func TestStore_MigrateIdempotent(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const n = 25
	ids := make([]int64, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rec, err := store.CreateAssessment(ctx, testDraft(nil))
			if err != nil {
				return err
			}
			ids[i] = rec.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for i := 1; i < n; i++ {
		assert.Less(t, ids[i-1], ids[i], "ids must be unique")
	}
}

func TestStore_InsertFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(`INSERT INTO assessments`).WillReturnError(errors.New("database is locked"))

	_, err = New(conn).CreateAssessment(context.Background(), testDraft(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert assessment")
	assert.NotErrorIs(t, err, assessment.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LastInsertIDFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(`INSERT INTO assessments`).WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))

	_, err = New(conn).CreateAssessment(context.Background(), testDraft(nil))
	assert.ErrorContains(t, err, "failed to read assessment id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT id, .* FROM assessments WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("disk I/O error"))

	_, err = New(conn).GetAssessment(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, assessment.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CorruptJSONColumn(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "role", "experience_level",
		"technical_self_rating", "technical_mcq_answer", "technical_mcq_correct",
		"has_resume", "resume_text", "communication_rating", "has_portfolio", "portfolio_url",
		"score_technical", "score_resume", "score_communication", "score_portfolio", "total_score", "readiness_level",
		"strengths", "gaps", "improvement_plan", "ai_feedback", "estimated_days",
	}).AddRow(
		int64(3), "Al", "al@example.com", "backend", "mid",
		int64(5), "GET", false,
		false, nil, int64(5), false, nil,
		int64(13), int64(0), int64(10), int64(0), int64(23), "Beginner",
		"not json", "[]", "[]", "ok", int64(14),
	)
	mock.ExpectQuery(`SELECT id, .* FROM assessments`).WillReturnRows(rows)

	_, err = New(conn).GetAssessment(context.Background(), 3)
	assert.ErrorContains(t, err, "failed to unmarshal strengths")
	assert.NoError(t, mock.ExpectationsWereMet())
}
