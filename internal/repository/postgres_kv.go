package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/juliocesarjcrs/investment-compare/internal/database"
)

const upsertKV = `
	INSERT INTO comparison_kv (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

// execer is satisfied by both the pool wrapper and a transaction.
type execer interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// PostgresKV implements KVStore on the comparison_kv table
type PostgresKV struct {
	db *database.DB
}

// NewPostgresKV creates a new PostgreSQL key-value store
func NewPostgresKV(db *database.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// Get retrieves the value stored at key
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM comparison_kv WHERE key = $1`

	var value []byte
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts the value stored at key
func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	return upsert(ctx, p.db, key, value)
}

func upsert(ctx context.Context, db execer, key string, value []byte) error {
	if _, err := db.Exec(ctx, upsertKV, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM comparison_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists keys starting with prefix
func (p *PostgresKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key FROM comparison_kv
		WHERE left(key, length($1::text)) = $1::text
		ORDER BY key
	`

	rows, err := p.db.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys with prefix %s: %w", prefix, err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return keys, nil
}

// Update runs fn and its writes in one transaction. A transaction-scoped
// advisory lock on key serializes updates even while the key has no row yet.
func (p *PostgresKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, key); err != nil {
			return fmt.Errorf("failed to lock %s: %w", key, err)
		}

		var current []byte
		found := true
		err := tx.QueryRow(ctx, `SELECT value FROM comparison_kv WHERE key = $1 FOR UPDATE`, key).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
		} else if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		value, batch, err := fn(current, found)
		if err != nil {
			return err
		}

		for k, v := range batch.Sets {
			if err := upsert(ctx, tx, k, v); err != nil {
				return err
			}
		}
		if len(batch.Deletes) > 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM comparison_kv WHERE key = ANY($1)`, batch.Deletes); err != nil {
				return fmt.Errorf("failed to delete batch: %w", err)
			}
		}
		if value == nil {
			if _, err := tx.Exec(ctx, `DELETE FROM comparison_kv WHERE key = $1`, key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			return nil
		}
		return upsert(ctx, tx, key, value)
	})
}
