// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the livepoll API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - PollHandler: Poll lifecycle (create, read, edit)
  - VotingHandler: Participant join and vote submission
  - LiveHandler: Results retrieval and live streaming

Handlers are created via constructor functions that accept *store.Store
and Config:

	pollHandler := handlers.NewPollHandler(st, cfg)

# Author Flow

Authors create a poll and share the returned session code:

	POST /polls          → CreatePoll (returns session_code, share_url)
	GET  /polls/{code}   → GetPoll
	PUT  /polls/{code}   → UpdatePoll (rejected with 409 once votes exist)

Session codes are server-generated, six characters from [A-Z0-9]. On
the unlikely collision the create is retried with a fresh code.

# Participant Flow

Participants interact via the session code:

	POST /polls/{code}/join  → JoinPoll (returns voter_token)
	POST /polls/{code}/votes → SubmitVote (one per voter_token, else 409)

Vote submission requires the X-Voter-Token header. A vote names one
option label, or several when the poll allows multiple selections.
All selections in a submission commit atomically.

# Live Results

Current tallies and the live stream:

	GET /polls/{code}/results → GetResults
	GET /polls/{code}/live    → StreamLive (Server-Sent Events)

The stream sends the current snapshot on connect, then one event per
committed vote or edit. Slow consumers are coalesced to the newest
snapshot rather than blocking writers.
*/
package handlers
