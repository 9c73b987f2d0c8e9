// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/telemetry"
)

type VotingHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(st *store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg}
}

// JoinPoll handles POST /polls/{code}/join
// Issues the voter token that scopes the one-vote guard to this page
// session. The token is not persisted until a vote is actually cast.
func (h *VotingHandler) JoinPoll(w http.ResponseWriter, r *http.Request) {
	code, err := session.NormalizeCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	if _, err := h.store.Read(r.Context(), code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to read poll", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token := session.NewVoterToken()
	slog.Info("participant joined", "session_code", code, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.JoinPollResponse{
		VoterToken: token,
	})
}

// SubmitVote handles POST /polls/{code}/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	code, err := session.NormalizeCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	// Get voter token from header
	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Options) == 0 {
		telemetry.IncVotesRejected("empty_selection")
		middleware.ErrorResponse(w, http.StatusBadRequest, "options cannot be empty")
		return
	}
	seen := make(map[string]bool, len(req.Options))
	for _, label := range req.Options {
		if seen[label] {
			telemetry.IncVotesRejected("duplicate_label")
			middleware.ErrorResponse(w, http.StatusBadRequest, "options must be distinct")
			return
		}
		seen[label] = true
	}

	var state models.PollState
	var voteErr error
	telemetry.TimeVoteTxn(func() {
		state, voteErr = h.store.ApplyVote(r.Context(), code, voterToken, req.Options)
	})

	switch {
	case errors.Is(voteErr, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	case errors.Is(voteErr, store.ErrSingleSelection):
		telemetry.IncVotesRejected("single_selection")
		middleware.ErrorResponse(w, http.StatusBadRequest, "This poll accepts a single selection")
		return
	case errors.Is(voteErr, store.ErrUnknownOption):
		telemetry.IncVotesRejected("unknown_option")
		middleware.ErrorResponse(w, http.StatusBadRequest, "Selected option is not part of this poll")
		return
	case errors.Is(voteErr, store.ErrAlreadyVoted):
		telemetry.IncVotesRejected("duplicate_voter")
		middleware.ErrorResponse(w, http.StatusConflict, "Vote already recorded for this session")
		return
	case voteErr != nil:
		slog.Error("failed to apply vote", "error", voteErr, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	telemetry.IncVotesSubmitted()
	slog.Info("vote recorded", "session_code", code, "selections", len(req.Options), "total_votes", state.TotalVotes)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Votes:      state.Votes,
		TotalVotes: state.TotalVotes,
	})
}
