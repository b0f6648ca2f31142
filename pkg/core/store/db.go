package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool using the DATABASE_URL environment variable
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil || pool == nil {
			return
		}
		err = ensureSchema(ctx, pool)
	})
	return err
}

// ensureSchema creates the analysis cache table if it does not exist yet, so
// a fresh database works without a migration step.
func ensureSchema(ctx context.Context, p *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS filing_analyses (
			content_hash TEXT PRIMARY KEY,
			analysis_id  TEXT NOT NULL,
			company_name TEXT,
			report_type  TEXT,
			data_quality TEXT,
			result       JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := p.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure filing_analyses schema: %w", err)
	}
	return nil
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}
