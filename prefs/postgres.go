package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pools   = map[string]*pgxpool.Pool{}
	poolsMu sync.Mutex
)

// getPool returns one shared pool per DSN for the process.
func getPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	if pool, ok := pools[dsn]; ok {
		return pool, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	pools[dsn] = pool
	return pool, nil
}

// PostgresStore shares preferences between terminals through one table.
type PostgresStore struct {
	dsn  string
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres preference store needs prefs.dsn or DATABASE_URL")
	}
	pool, err := getPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	_, err = pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS invctl_preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT now()
	);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create invctl_preferences table: %w", err)
	}
	return &PostgresStore{dsn: dsn, pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM invctl_preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO invctl_preferences (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM invctl_preferences WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

// Close releases the shared pool for this DSN.
func (s *PostgresStore) Close() error {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	if pool, ok := pools[s.dsn]; ok {
		pool.Close()
		delete(pools, s.dsn)
	}
	return nil
}
