package store

import (
	"context"
	"database/sql"
	"fmt"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS study_plans (
		owner TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		data TEXT NOT NULL,
		saved_at INTEGER NOT NULL,
		PRIMARY KEY (owner, plan_id)
	)`,
	`CREATE INDEX IF NOT EXISTS study_plans_owner_sequence ON study_plans (owner, sequence)`,
	`CREATE TABLE IF NOT EXISTS request_events (
		sequence INTEGER PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		operation TEXT NOT NULL,
		request_id TEXT NOT NULL,
		status_code INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates every table the repositories need.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
