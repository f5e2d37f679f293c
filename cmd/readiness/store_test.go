package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/readiness-check/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		DatabaseURL:    "file:" + filepath.Join(t.TempDir(), "readiness.db"),
	}

	st, closeStore, err := openStore(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, st.Migrate(ctx))
	assert.NoError(t, st.Ping(ctx))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore(context.Background(), &config.Config{DatabaseDriver: "mysql"})
	assert.EqualError(t, err, "unsupported database driver: mysql")
}
