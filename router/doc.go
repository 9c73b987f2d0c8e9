// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Poll management (author):

	POST /polls        - Create poll (returns session_code)
	GET  /polls/{code} - Get poll state
	PUT  /polls/{code} - Edit poll (409 once votes exist)

Voting (public, uses session code):

	POST /polls/{code}/join  - Obtain voter token
	POST /polls/{code}/votes - Submit vote (X-Voter-Token)

Results (public):

	GET /polls/{code}/results - Current tallies
	GET /polls/{code}/live    - Server-Sent Events stream

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	liveHandler := handlers.NewLiveHandler(st)

All handlers receive the store; poll and voting handlers also take the
configuration.
*/
package router
