package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent; it runs on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		rating     DOUBLE PRECISION,
		notes      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS signups (
		id              SERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		contact         TEXT,
		tournament_date TEXT NOT NULL,
		skill           INTEGER NOT NULL DEFAULT 2 CONSTRAINT signups_skill_check CHECK (skill BETWEEN 1 AND 4),
		checked_in      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE signups ADD COLUMN IF NOT EXISTS skill INTEGER NOT NULL DEFAULT 2`,
	`ALTER TABLE signups ADD COLUMN IF NOT EXISTS checked_in BOOLEAN NOT NULL DEFAULT FALSE`,
	`CREATE INDEX IF NOT EXISTS signups_tournament_date_idx ON signups (tournament_date)`,
	`CREATE TABLE IF NOT EXISTS signup_dates (
		tournament_date TEXT PRIMARY KEY,
		closed          BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id              SERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		tournament_date TEXT NOT NULL,
		format          TEXT NOT NULL,
		target_type     TEXT NOT NULL,
		target_value    INTEGER NOT NULL,
		courts          TEXT[] NOT NULL,
		bracket         JSONB NOT NULL,
		log             JSONB NOT NULL DEFAULT '[]',
		status          TEXT NOT NULL DEFAULT 'active',
		summary         JSONB,
		summary_key     TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at    TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tournaments_one_active_idx ON tournaments ((status)) WHERE status = 'active'`,
}

// Migrate creates or upgrades the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
