package main

import (
	"context"
	"fmt"

	"github.com/jonathan/readiness-check/internal/assessment"
	"github.com/jonathan/readiness-check/internal/config"
	"github.com/jonathan/readiness-check/internal/db"
	"github.com/jonathan/readiness-check/internal/db/sqlite"
)

// store is the persistence surface the commands need from either backend.
type store interface {
	assessment.Store
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// openStore connects to the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	switch cfg.DatabaseDriver {
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		pg, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
}
