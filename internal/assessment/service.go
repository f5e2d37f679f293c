package assessment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonathan/readiness-check/internal/metrics"
	"github.com/jonathan/readiness-check/internal/scoring"
	"github.com/jonathan/readiness-check/internal/types"
	"go.uber.org/zap"
)

// Synthesizer writes the narrative feedback for a scored submission. It must not fail.
type Synthesizer interface {
	Synthesize(ctx context.Context, in types.SubmissionInput, rubric types.RubricResult) types.FeedbackResult
}

// Service implements the create and read operations behind the HTTP API.
type Service struct {
	store  Store
	synth  Synthesizer
	logger *zap.Logger
}

// NewService creates a Service.
func NewService(store Store, synth Synthesizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, synth: synth, logger: logger}
}

// Create validates, scores, critiques and stores a raw submission.
//
// Once validation passes the pipeline is detached from ctx cancellation: a
// disconnecting caller does not abort the model call or the write.
func (s *Service) Create(ctx context.Context, raw []byte) (*types.Assessment, error) {
	in, err := DecodeSubmission(raw)
	if err != nil {
		metrics.AssessmentsFailed.WithLabelValues(metrics.ReasonValidation).Inc()
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	rubric := scoring.Evaluate(in)
	fb := s.synth.Synthesize(ctx, in, rubric)
	draft := Assemble(in, rubric, fb)

	record, err := s.store.CreateAssessment(ctx, draft)
	if err != nil {
		metrics.AssessmentsFailed.WithLabelValues(metrics.ReasonStorage).Inc()
		s.logger.Error("failed to store assessment",
			zap.String("role", string(in.Role)),
			zap.Int("total_score", rubric.TotalScore),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}

	metrics.AssessmentsCreated.Inc()
	s.logger.Info("assessment created",
		zap.Int64("id", record.ID),
		zap.String("role", string(in.Role)),
		zap.Int("total_score", rubric.TotalScore),
		zap.String("readiness", string(rubric.ReadinessLevel)))
	return record, nil
}

// Get returns the assessment named by a raw path identifier.
func (s *Service) Get(ctx context.Context, rawID string) (*types.Assessment, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.store.GetAssessment(ctx, id)
}

// Score validates and scores a raw submission without calling the model or storing it.
func Score(raw []byte) (types.RubricResult, error) {
	in, err := DecodeSubmission(raw)
	if err != nil {
		return types.RubricResult{}, err
	}
	return scoring.Evaluate(in), nil
}

// ParseID accepts only plain positive base-10 integers.
func ParseID(raw string) (int64, error) {
	invalid := &ValidationError{Message: "Invalid ID"}
	if raw == "" {
		return 0, invalid
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, invalid
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}
