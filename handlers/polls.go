// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/telemetry"
)

// createAttempts bounds the collision retry loop for session codes. The
// code space is 36^6, so more than one retry is already suspicious.
const createAttempts = 5

type PollHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewPollHandler(st *store.Store, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: st, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validatePollInput(req.Question, req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := session.GenerateCode()
		if err != nil {
			slog.Error("failed to generate session code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}

		state := models.PollState{
			SessionCode:     code,
			Question:        req.Question,
			Options:         req.Options,
			ShowResultsLive: req.ShowResultsLive,
			AllowMultiple:   req.AllowMultiple,
			Votes:           map[string]int{},
			CreatedAt:       time.Now().UTC(),
		}

		err = h.store.Create(r.Context(), state)
		if errors.Is(err, store.ErrCodeTaken) {
			telemetry.IncCodeCollisions()
			slog.Warn("session code collision, retrying", "session_code", code, "attempt", attempt+1)
			continue
		}
		if err != nil {
			slog.Error("failed to create poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}

		telemetry.IncPollsCreated()
		slog.Info("poll created", "session_code", code, "options", len(req.Options))

		middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
			SessionCode: code,
			ShareURL:    shareURL(r, h.cfg, code),
		})
		return
	}

	slog.Error("exhausted session code attempts", "attempts", createAttempts)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to allocate a session code")
}

// GetPoll handles GET /polls/{code}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	code, err := session.NormalizeCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	state, err := h.store.Read(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to read poll", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}

// UpdatePoll handles PUT /polls/{code}
// Edits commit only while the poll has no recorded votes.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	code, err := session.NormalizeCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validatePollInput(req.Question, req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	state := models.PollState{
		SessionCode:     code,
		Question:        req.Question,
		Options:         req.Options,
		ShowResultsLive: req.ShowResultsLive,
		AllowMultiple:   req.AllowMultiple,
	}

	err = h.store.Update(r.Context(), code, state)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if errors.Is(err, store.ErrVotesCast) {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll already has votes")
		return
	}
	if err != nil {
		slog.Error("failed to update poll", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	updated, err := h.store.Read(r.Context(), code)
	if err != nil {
		slog.Error("failed to read poll after update", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("poll updated", "session_code", code)
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// validatePollInput checks the shared create/update constraints and returns
// a user-facing message, or "" when the input is acceptable.
func validatePollInput(question string, options []string) string {
	if strings.TrimSpace(question) == "" {
		return "question is required"
	}
	if len(question) > 500 {
		return "question must be at most 500 characters"
	}
	if len(options) < 2 {
		return "poll must have at least 2 options"
	}
	seen := make(map[string]bool, len(options))
	for _, label := range options {
		if strings.TrimSpace(label) == "" {
			return "option labels cannot be empty"
		}
		if len(label) > 100 {
			return "option labels must be at most 100 characters"
		}
		if seen[label] {
			return "option labels must be distinct"
		}
		seen[label] = true
	}
	return ""
}

// shareURL builds the participant link for a poll. The original client
// derived this from the browser's own location; here the request host plays
// that role, with BASE_URL as the deployment-domain override.
func shareURL(r *http.Request, cfg cliparse.Config, code string) string {
	base := cfg.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return strings.TrimRight(base, "/") + "/poll/" + code
}
