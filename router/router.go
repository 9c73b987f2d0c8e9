// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	liveHandler := handlers.NewLiveHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Poll management (author operations)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{code}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{code}", middleware.WithLogging(pollHandler.UpdatePoll))

	// Voting operations (public)
	mux.HandleFunc("POST /polls/{code}/join", middleware.WithLogging(votingHandler.JoinPoll))
	mux.HandleFunc("POST /polls/{code}/votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Results retrieval and live stream (public)
	mux.HandleFunc("GET /polls/{code}/results", middleware.WithLogging(liveHandler.GetResults))
	mux.HandleFunc("GET /polls/{code}/live", middleware.WithLogging(liveHandler.StreamLive))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
