package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds server configuration. WriteTimeout must cover the slowest
// submission; zero means defaultWriteTimeout.
type Config struct {
	Port              int
	CORSAllowedOrigin string
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

const defaultWriteTimeout = 120 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	service         *assessment.Service
	health          Pinger
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// New creates a new server instance. health may be nil.
func New(cfg Config, service *assessment.Service, health Pinger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CORSAllowedOrigin == "" {
		cfg.CORSAllowedOrigin = "*"
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		service:         service,
		health:          health,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/assessments", s.handleCreateAssessment)
	mux.HandleFunc("GET /api/assessments/{id}", s.handleGetAssessment)
	mux.HandleFunc("GET /api/questions", s.handleListQuestions)
	mux.HandleFunc("GET /api/questions/{role}", s.handleGetQuestion)
	mux.HandleFunc("GET /api/schema/submission", s.handleSubmissionSchema)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.CORS(cfg.CORSAllowedOrigin),
		middleware.Logging(logger),
		middleware.Recover(logger),
	)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port until ctx is cancelled or the process
// receives SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes the client-facing form of err
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, body := publicError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
	s.jsonResponse(w, status, body)
}
