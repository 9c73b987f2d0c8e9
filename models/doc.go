// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options, show_results_live, allow_multiple
  - UpdatePollRequest: same shape, pre-vote edits only
  - SubmitVoteRequest: options (selected labels)

# Response Types

Types for JSON responses:

  - CreatePollResponse: session_code, share_url
  - JoinPollResponse: voter_token
  - SubmitVoteResponse: votes, total_votes
  - ResultsResponse: session_code, votes, total_votes
  - ErrorResponse: error, message

# Domain Types

PollState is the one document held per session code: question, ordered
options, display flags, the vote tally map, and the running total. It is
the unit of storage, of point reads, and of fan-out to live subscribers.
*/
package models
