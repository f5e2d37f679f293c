// Package feedback writes the narrative part of an assessment with a generative model.
// A submission never fails because of the model: any problem degrades to fixed defaults.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/readiness-check/internal/llm"
	"github.com/jonathan/readiness-check/internal/metrics"
	"github.com/jonathan/readiness-check/internal/prompts"
	"github.com/jonathan/readiness-check/internal/types"
	"go.uber.org/zap"
)

// Options tunes the outbound call.
type Options struct {
	// Timeout bounds each attempt. Zero means llm.DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a failed one.
	MaxRetries int
	// Backoff is multiplied by the attempt number between attempts.
	Backoff time.Duration
}

// Synthesizer turns a scored submission into a critique.
type Synthesizer struct {
	client llm.Client
	logger *zap.Logger
	opts   Options
}

// New creates a Synthesizer. The client is shared and must be safe for concurrent use.
func New(client llm.Client, logger *zap.Logger, opts Options) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = llm.DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Synthesizer{client: client, logger: logger, opts: opts}
}

// Synthesize returns a usable critique, falling back to defaults on any failure.
func (s *Synthesizer) Synthesize(ctx context.Context, in types.SubmissionInput, rubric types.RubricResult) types.FeedbackResult {
	return s.Attempt(ctx, in, rubric).Feedback
}

// Attempt is Synthesize with the tagged outcome exposed.
func (s *Synthesizer) Attempt(ctx context.Context, in types.SubmissionInput, rubric types.RubricResult) Result {
	res := s.attempt(ctx, in, rubric)

	metrics.FeedbackOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	for _, field := range res.Substituted {
		metrics.FeedbackFieldDefaults.WithLabelValues(field).Inc()
	}

	fields := []zap.Field{
		zap.String("outcome", string(res.Outcome)),
		zap.String("role", string(in.Role)),
		zap.Int("total_score", rubric.TotalScore),
	}
	switch res.Outcome {
	case OutcomeComplete:
		if len(res.Drift) > 0 {
			s.logger.Info("feedback response repaired", append(fields, zap.Strings("drift", res.Drift))...)
		} else {
			s.logger.Debug("feedback synthesized", fields...)
		}
	case OutcomePartial:
		s.logger.Warn("feedback degraded to partial defaults",
			append(fields, zap.Strings("defaulted", res.Substituted), zap.Strings("drift", res.Drift))...)
	default:
		s.logger.Warn("feedback degraded to defaults", append(fields, zap.Error(res.Err))...)
	}
	return res
}

func (s *Synthesizer) attempt(ctx context.Context, in types.SubmissionInput, rubric types.RubricResult) Result {
	if s.client == nil {
		return Failed(rubric.TotalScore, fmt.Errorf("no generative client configured"))
	}

	prompt, err := BuildPrompt(in, rubric)
	if err != nil {
		return Failed(rubric.TotalScore, err)
	}

	var res Result
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := s.wait(ctx, attempt); err != nil {
				return Failed(rubric.TotalScore, fmt.Errorf("retry aborted: %w (last error: %v)", err, res.Err))
			}
			s.logger.Debug("retrying feedback request", zap.Int("attempt", attempt+1), zap.Error(res.Err))
		}

		raw, err := s.generate(ctx, prompt)
		if err != nil {
			res = Failed(rubric.TotalScore, err)
			continue
		}
		res = Parse(raw, rubric.TotalScore)
		if res.Outcome != OutcomeFailed {
			return res
		}
	}
	return res
}

// generate runs one bounded call. Client panics are reported as errors.
func (s *Synthesizer) generate(ctx context.Context, prompt string) (raw string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generative client panicked: %v", r)
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.LLMRequestDuration.WithLabelValues(string(s.client.Provider()), status).Observe(time.Since(start).Seconds())
	}()

	raw, err = s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generative call failed: %w", err)
	}
	return raw, nil
}

func (s *Synthesizer) wait(ctx context.Context, attempt int) error {
	delay := s.opts.Backoff * time.Duration(attempt)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type promptData struct {
	ExperienceLevel     types.ExperienceLevel
	Role                types.Role
	TechnicalSelfRating int
	McqCorrect          bool
	HasResume           bool
	CommunicationRating int
	HasPortfolio        bool
	TotalScore          int
	ReadinessLevel      types.ReadinessLevel
}

// BuildPrompt renders the request sent to the model.
func BuildPrompt(in types.SubmissionInput, rubric types.RubricResult) (string, error) {
	prompt, err := prompts.Render("feedback.json", "assessment-feedback", promptData{
		ExperienceLevel:     in.ExperienceLevel,
		Role:                in.Role,
		TechnicalSelfRating: in.TechnicalSelfRating,
		McqCorrect:          rubric.TechnicalMcqCorrect,
		HasResume:           in.HasResume,
		CommunicationRating: in.CommunicationRating,
		HasPortfolio:        in.HasPortfolio,
		TotalScore:          rubric.TotalScore,
		ReadinessLevel:      rubric.ReadinessLevel,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build feedback prompt: %w", err)
	}
	return prompt, nil
}
