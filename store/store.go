// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/livepoll/models"
)

var (
	ErrNotFound        = errors.New("poll not found")
	ErrCodeTaken       = errors.New("session code already in use")
	ErrUnknownOption   = errors.New("option is not part of this poll")
	ErrAlreadyVoted    = errors.New("voter has already voted")
	ErrSingleSelection = errors.New("poll accepts a single selection")
	ErrVotesCast       = errors.New("poll already has recorded votes")
)

// Store is the sole boundary between the poll feature and the database.
// Every committed write fans the resulting snapshot out to subscribers of
// that session code.
type Store struct {
	db  *sql.DB
	hub *hub
}

func New(db *sql.DB) *Store {
	return &Store{db: db, hub: newHub()}
}

// Create writes a new poll document at state.SessionCode. A code collision
// returns ErrCodeTaken so the caller can retry with a fresh code; existing
// documents are never overwritten.
func (s *Store) Create(ctx context.Context, state models.PollState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_session (code, question, show_results_live, allow_multiple, total_votes, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, state.SessionCode, state.Question, state.ShowResultsLive, state.AllowMultiple, state.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert poll session: %w", err)
	}

	for i, label := range state.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (code, label, position, tally)
			VALUES ($1, $2, $3, 0)
		`, state.SessionCode, label, i)
		if err != nil {
			return fmt.Errorf("insert option %q: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create: %w", err)
	}

	s.publish(ctx, state.SessionCode)
	return nil
}

// Read performs a point read of the document at code. A missing document is
// ErrNotFound, never a panic or an empty state.
func (s *Store) Read(ctx context.Context, code string) (models.PollState, error) {
	var state models.PollState
	err := s.db.QueryRowContext(ctx, `
		SELECT code, question, show_results_live, allow_multiple, total_votes, created_at
		FROM poll_session
		WHERE code = $1
	`, code).Scan(
		&state.SessionCode, &state.Question, &state.ShowResultsLive,
		&state.AllowMultiple, &state.TotalVotes, &state.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.PollState{}, ErrNotFound
	}
	if err != nil {
		return models.PollState{}, fmt.Errorf("read poll session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT label, tally
		FROM poll_option
		WHERE code = $1
		ORDER BY position
	`, code)
	if err != nil {
		return models.PollState{}, fmt.Errorf("read options: %w", err)
	}
	defer rows.Close()

	state.Options = []string{}
	state.Votes = map[string]int{}
	for rows.Next() {
		var label string
		var tally int
		if err := rows.Scan(&label, &tally); err != nil {
			return models.PollState{}, fmt.Errorf("scan option: %w", err)
		}
		state.Options = append(state.Options, label)
		// Absent key means zero votes; only record options someone picked.
		if tally > 0 {
			state.Votes[label] = tally
		}
	}
	if err := rows.Err(); err != nil {
		return models.PollState{}, fmt.Errorf("iterate options: %w", err)
	}

	return state, nil
}

// ApplyVote records one participant's selections as atomic tally increments
// inside a single transaction. Two concurrent voters can never lose an
// increment: the row update is `tally = tally + 1`, not a field overwrite.
// One vote is accepted per (code, voterToken); a second attempt returns
// ErrAlreadyVoted and writes nothing.
func (s *Store) ApplyVote(ctx context.Context, code, voterToken string, selections []string) (models.PollState, error) {
	if len(selections) == 0 {
		return models.PollState{}, fmt.Errorf("%w: empty selection", ErrUnknownOption)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PollState{}, fmt.Errorf("begin vote: %w", err)
	}
	defer tx.Rollback()

	var allowMultiple bool
	err = tx.QueryRowContext(ctx, `
		SELECT allow_multiple FROM poll_session WHERE code = $1
	`, code).Scan(&allowMultiple)
	if err == sql.ErrNoRows {
		return models.PollState{}, ErrNotFound
	}
	if err != nil {
		return models.PollState{}, fmt.Errorf("read poll session: %w", err)
	}

	if !allowMultiple && len(selections) > 1 {
		return models.PollState{}, ErrSingleSelection
	}

	// The primary key on (code, voter_token) is the one-vote guard.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_voter (code, voter_token, voted_at)
		VALUES ($1, $2, $3)
	`, code, voterToken, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return models.PollState{}, ErrAlreadyVoted
		}
		return models.PollState{}, fmt.Errorf("record voter: %w", err)
	}

	for _, label := range selections {
		res, err := tx.ExecContext(ctx, `
			UPDATE poll_option SET tally = tally + 1
			WHERE code = $1 AND label = $2
		`, code, label)
		if err != nil {
			return models.PollState{}, fmt.Errorf("increment tally for %q: %w", label, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return models.PollState{}, fmt.Errorf("increment tally for %q: %w", label, err)
		}
		if n == 0 {
			return models.PollState{}, fmt.Errorf("%w: %s", ErrUnknownOption, label)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll_session SET total_votes = total_votes + $1
		WHERE code = $2
	`, len(selections), code)
	if err != nil {
		return models.PollState{}, fmt.Errorf("increment total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.PollState{}, fmt.Errorf("commit vote: %w", err)
	}

	state, err := s.Read(ctx, code)
	if err != nil {
		return models.PollState{}, err
	}
	s.hub.publish(code, state)
	return state, nil
}

// Update replaces the question, options, and display flags of a poll that
// has no recorded votes yet. Once any vote exists the document is frozen
// except for tallies, and Update returns ErrVotesCast.
func (s *Store) Update(ctx context.Context, code string, state models.PollState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var totalVotes int
	err = tx.QueryRowContext(ctx, `
		SELECT total_votes FROM poll_session WHERE code = $1
	`, code).Scan(&totalVotes)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read poll session: %w", err)
	}
	if totalVotes > 0 {
		return ErrVotesCast
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll_session SET question = $1, show_results_live = $2, allow_multiple = $3
		WHERE code = $4
	`, state.Question, state.ShowResultsLive, state.AllowMultiple, code)
	if err != nil {
		return fmt.Errorf("update poll session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM poll_option WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("clear options: %w", err)
	}
	for i, label := range state.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (code, label, position, tally)
			VALUES ($1, $2, $3, 0)
		`, code, label, i)
		if err != nil {
			return fmt.Errorf("insert option %q: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}

	s.publish(ctx, code)
	return nil
}

// Subscribe registers a listener for every committed write to code,
// including this client's own writes. The returned cancel func is
// idempotent; after it runs the channel is closed and receives nothing.
func (s *Store) Subscribe(code string) (<-chan models.PollState, func()) {
	return s.hub.subscribe(code)
}

// publish re-reads the document and fans it out. Best effort: a read error
// here only costs subscribers one snapshot, the next write delivers again.
func (s *Store) publish(ctx context.Context, code string) {
	state, err := s.Read(ctx, code)
	if err != nil {
		return
	}
	s.hub.publish(code, state)
}

// isUniqueViolation matches the constraint errors of both backends the way
// the drivers report them: lib/pq says "duplicate key value violates unique
// constraint", modernc.org/sqlite says "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed: poll_")
}
