package main

import (
	"fmt"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/config"
	"github.com/jonathan/readiness-check/internal/feedback"
	"github.com/jonathan/readiness-check/internal/llm"
	"github.com/jonathan/readiness-check/internal/logging"
	"github.com/jonathan/readiness-check/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts assessment submissions and serves stored results.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	redacted := cfg.Redacted()
	logger.Info("configuration loaded",
		zap.Int("port", redacted.Port),
		zap.String("database_driver", redacted.DatabaseDriver),
		zap.String("database_url", redacted.DatabaseURL),
		zap.String("llm_provider", redacted.LLMProvider),
		zap.Duration("llm_timeout", redacted.LLMTimeout),
		zap.Int("llm_max_retries", redacted.LLMMaxRetries))

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	// Missing credentials fail here rather than on the first submission
	client, err := llm.NewClient(ctx, cfg.LLM())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()
	logger.Info("LLM client ready",
		zap.String("provider", string(client.Provider())),
		zap.String("model", client.Model()))

	synth := feedback.New(client, logger, feedback.Options{
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
		Backoff:    cfg.LLMRetryBackoff,
	})
	svc := assessment.NewService(st, synth, logger)

	srv := server.New(server.Config{
		Port:              cfg.Port,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		WriteTimeout:      cfg.RequestBudget(),
	}, svc, st, logger)

	return srv.Start(ctx)
}
