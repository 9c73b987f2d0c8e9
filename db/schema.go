// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect shared by PostgreSQL and SQLite:
// no server-side time defaults (timestamps are always passed from Go) and
// no JSON column types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Poll sessions: one document per session code
CREATE TABLE IF NOT EXISTS poll_session (
    code TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    show_results_live BOOLEAN NOT NULL DEFAULT TRUE,
    allow_multiple BOOLEAN NOT NULL DEFAULT FALSE,
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    created_at TIMESTAMP NOT NULL
);

-- Options: ordered labels with their running tallies
CREATE TABLE IF NOT EXISTS poll_option (
    code TEXT NOT NULL REFERENCES poll_session(code) ON DELETE CASCADE,
    label TEXT NOT NULL,
    position INTEGER NOT NULL,
    tally INTEGER NOT NULL DEFAULT 0 CHECK (tally >= 0),
    PRIMARY KEY (code, label)
);

CREATE INDEX IF NOT EXISTS idx_poll_option_code ON poll_option(code);

-- Voters: one row per recorded vote, keyed by voter token
CREATE TABLE IF NOT EXISTS poll_voter (
    code TEXT NOT NULL REFERENCES poll_session(code) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (code, voter_token)
);

CREATE INDEX IF NOT EXISTS idx_poll_voter_code ON poll_voter(code);
`
