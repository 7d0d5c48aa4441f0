// AngelaMos | 2026
// postgres.go

package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/storefront/internal/core"
)

// Postgres stores entries in the kv_entries table created by the embedded
// migrations.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	return getEntry(ctx, p.db, key)
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	return putEntry(ctx, p.db, key, value)
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete entry %q: %w", key, err)
	}

	return nil
}

// Update serializes writers of one key with a transaction-scoped advisory
// lock, which also covers keys that do not exist yet.
func (p *Postgres) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return core.InTx(ctx, p.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1))`,
			key,
		); err != nil {
			return fmt.Errorf("lock entry %q: %w", key, err)
		}

		current, err := getEntry(ctx, tx, key)
		found := true
		if errors.Is(err, core.ErrNotFound) {
			found = false
		} else if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		return putEntry(ctx, tx, key, next)
	})
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func getEntry(ctx context.Context, db core.DBTX, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %q: %w", key, err)
	}

	return value, nil
}

func putEntry(ctx context.Context, db core.DBTX, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("put entry %q: %w", key, err)
	}

	return nil
}
