package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/readiness-check/internal/assessment"
	jsonschema "github.com/jonathan/readiness-check/internal/schemas"
	"github.com/jonathan/readiness-check/internal/scoring"
	"github.com/jonathan/readiness-check/internal/types"
	"github.com/jonathan/readiness-check/schemas"
	"go.uber.org/zap"
)

// maxBodyBytes caps submission bodies; resume text is the only large field.
const maxBodyBytes = 1 << 20

// handleCreateAssessment scores, critiques and stores a submission
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		msg := "failed to read request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body too large"
		}
		s.errorResponse(w, r, &assessment.ValidationError{
			Message: "Invalid input",
			Errors:  []assessment.FieldError{{Field: jsonschema.RootField, Message: msg}},
		})
		return
	}

	record, err := s.service.Create(r.Context(), body)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleGetAssessment returns a stored assessment
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleListQuestions returns the quiz item of every role
func (s *Server) handleListQuestions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, scoring.Questions())
}

// handleGetQuestion returns the quiz item for a role
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	q, ok := scoring.QuestionFor(types.Role(role))
	if !ok {
		s.errorResponse(w, r, &ErrRoleNotFound{Role: role})
		return
	}

	s.jsonResponse(w, http.StatusOK, q)
}

// handleSubmissionSchema serves the schema submissions are validated against
func (s *Server) handleSubmissionSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(schemas.Submission()); err != nil {
		s.logger.Warn("error writing schema response", zap.Error(err))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
