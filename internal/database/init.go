package database

import (
	"context"
	"fmt"

	"github.com/juliocesarjcrs/investment-compare/internal/config"
)

// KVTable holds every comparison store key.
const KVTable = "comparison_kv"

const createKVTable = `
	CREATE TABLE IF NOT EXISTS comparison_kv (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const createKVPrefixIndex = `
	CREATE INDEX IF NOT EXISTS comparison_kv_key_prefix_idx
	ON comparison_kv (key text_pattern_ops)`

// Initialize creates a database connection pool and makes sure the key-value schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Storage.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the key-value table and its prefix index when missing
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range []string{createKVTable, createKVPrefixIndex} {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create %s schema: %w", KVTable, err)
		}
	}
	return nil
}
