package main

import (
	"fmt"

	"github.com/jonathan/readiness-check/internal/config"
	"github.com/jonathan/readiness-check/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the assessments table",
	Long:  `Apply the schema for the configured database driver. Safe to run repeatedly.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("driver", cfg.DatabaseDriver))
	return nil
}
