// Package db provides optional PostgreSQL storage: cached dataset
// snapshots and completed recommendation-run records. The core never
// depends on it; everything here is operator convenience.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultSnapshotTTL is how long a cached dataset snapshot stays fresh.
const DefaultSnapshotTTL = 24 * time.Hour

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables this package uses when they do not
// exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_snapshots (
			source     TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS recommendation_runs (
			id              UUID PRIMARY KEY,
			risk_preference TEXT NOT NULL,
			selected_goals  JSONB NOT NULL,
			results         JSONB,
			status          TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at    TIMESTAMPTZ
		);`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// GetDatasetSnapshot returns a cached snapshot for a source when one
// exists and is younger than ttl. The second return value reports a hit.
func (db *DB) GetDatasetSnapshot(ctx context.Context, source string, ttl time.Duration) (string, bool, error) {
	var content string
	var fetchedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT content, fetched_at FROM dataset_snapshots WHERE source = $1`,
		source,
	).Scan(&content, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if time.Since(fetchedAt) > ttl {
		return "", false, nil
	}
	return content, true, nil
}

// SaveDatasetSnapshot stores or refreshes the snapshot for a source.
func (db *DB) SaveDatasetSnapshot(ctx context.Context, source, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO dataset_snapshots (source, content, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (source) DO UPDATE SET content = $2, fetched_at = NOW()`,
		source, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// CreateRun records a started recommendation run and returns its id.
func (db *DB) CreateRun(ctx context.Context, riskPreference string, selectedGoals any) (uuid.UUID, error) {
	goalsJSON, err := json.Marshal(selectedGoals)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal goals: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO recommendation_runs (id, risk_preference, selected_goals, status)
		 VALUES ($1, $2, $3, 'running')`,
		id, riskPreference, goalsJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun stores the run results and marks the run finished.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, results any) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE recommendation_runs
		 SET status = $1, results = $2, completed_at = NOW()
		 WHERE id = $3`,
		status, resultsJSON, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}
