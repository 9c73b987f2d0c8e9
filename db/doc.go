// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - poll_session: One row per session code (question, flags, running total)
  - poll_option: Ordered option labels and their tallies
  - poll_voter: One row per recorded vote, enforcing one vote per token

# Relationships

	poll_session 1──* poll_option
	poll_session 1──* poll_voter

All foreign keys use ON DELETE CASCADE.

# Portability

The same DDL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):
timestamps are supplied from Go rather than database defaults, and vote
tallies are plain integer columns updated with atomic increments.
*/
package db
