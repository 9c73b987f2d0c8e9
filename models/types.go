// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	ShowResultsLive bool     `json:"show_results_live"`
	AllowMultiple   bool     `json:"allow_multiple"`
}

// UpdatePollRequest replaces question, options, and display flags wholesale.
// Only accepted while the poll has no recorded votes.
type UpdatePollRequest struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	ShowResultsLive bool     `json:"show_results_live"`
	AllowMultiple   bool     `json:"allow_multiple"`
}

type SubmitVoteRequest struct {
	Options []string `json:"options"`
}

// Response types

type CreatePollResponse struct {
	SessionCode string `json:"session_code"`
	ShareURL    string `json:"share_url"`
}

type JoinPollResponse struct {
	VoterToken string `json:"voter_token"`
}

type SubmitVoteResponse struct {
	Votes      map[string]int `json:"votes"`
	TotalVotes int            `json:"total_votes"`
}

type ResultsResponse struct {
	SessionCode string         `json:"session_code"`
	Votes       map[string]int `json:"votes"`
	TotalVotes  int            `json:"total_votes"`
}

// Domain types

// PollState is the full document stored under one session code.
// Votes maps option label to tally; a label absent from Votes has zero
// recorded votes. TotalVotes equals the sum of Votes: tallies only change
// via atomic increments inside a single transaction.
type PollState struct {
	SessionCode     string         `json:"session_code"`
	Question        string         `json:"question"`
	Options         []string       `json:"options"`
	ShowResultsLive bool           `json:"show_results_live"`
	AllowMultiple   bool           `json:"allow_multiple"`
	Votes           map[string]int `json:"votes"`
	TotalVotes      int            `json:"total_votes"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
