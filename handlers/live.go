// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/store"
)

type LiveHandler struct {
	store *store.Store
}

func NewLiveHandler(st *store.Store) *LiveHandler {
	return &LiveHandler{store: st}
}

// GetResults handles GET /polls/{code}/results
func (h *LiveHandler) GetResults(w http.ResponseWriter, r *http.Request) {
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
		slog.Error("failed to read results", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		SessionCode: state.SessionCode,
		Votes:       state.Votes,
		TotalVotes:  state.TotalVotes,
	})
}

// StreamLive handles GET /polls/{code}/live
// Streams poll snapshots over Server-Sent Events: one event with the
// current state on connect, then one per committed vote or edit. The
// stream ends when the client disconnects.
func (h *LiveHandler) StreamLive(w http.ResponseWriter, r *http.Request) {
	code, err := session.NormalizeCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// Subscribe before the initial read so a vote landing between the two
	// shows up as an event rather than being lost.
	updates, cancel := h.store.Subscribe(code)
	defer cancel()

	state, err := h.store.Read(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to read poll for stream", "error", err, "session_code", code)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	slog.Info("live stream opened", "session_code", code, "remote", middleware.GetClientIP(r))

	if err := writeSnapshotEvent(w, flusher, state); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			slog.Info("live stream closed", "session_code", code)
			return
		case snapshot, open := <-updates:
			if !open {
				return
			}
			if err := writeSnapshotEvent(w, flusher, snapshot); err != nil {
				slog.Debug("live stream write failed", "error", err, "session_code", code)
				return
			}
		}
	}
}

func writeSnapshotEvent(w http.ResponseWriter, flusher http.Flusher, state models.PollState) error {
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(state); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
