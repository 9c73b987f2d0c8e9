// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

func TestJoinPoll(t *testing.T) {
	st := setupTestStore(t)
	handler := NewVotingHandler(st, getTestConfig())

	createPollDirect(t, st, "JN44QA", []string{"Tacos", "Ramen"}, false)

	t.Run("existing poll", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/polls/JN44QA/join", nil)
		req.SetPathValue("code", "JN44QA")
		w := httptest.NewRecorder()

		handler.JoinPoll(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.JoinPollResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if _, err := uuid.Parse(resp.VoterToken); err != nil {
			t.Errorf("Expected UUID voter token, got '%s': %v", resp.VoterToken, err)
		}
	})

	t.Run("each join issues a distinct token", func(t *testing.T) {
		tokens := make(map[string]bool)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/polls/JN44QA/join", nil)
			req.SetPathValue("code", "JN44QA")
			w := httptest.NewRecorder()

			handler.JoinPoll(w, req)

			var resp models.JoinPollResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if tokens[resp.VoterToken] {
				t.Fatalf("Duplicate voter token issued: %s", resp.VoterToken)
			}
			tokens[resp.VoterToken] = true
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/polls/ZZZZZZ/join", nil)
		req.SetPathValue("code", "ZZZZZZ")
		w := httptest.NewRecorder()

		handler.JoinPoll(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestSubmitVote(t *testing.T) {
	st := setupTestStore(t)
	handler := NewVotingHandler(st, getTestConfig())

	createPollDirect(t, st, "VT88MN", []string{"Tacos", "Ramen", "Pizza"}, false)
	createPollDirect(t, st, "MU55LT", []string{"Onion", "Basil", "Olives"}, true)

	submit := func(code, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/polls/"+code+"/votes", bytes.NewReader([]byte(body)))
		req.SetPathValue("code", code)
		if token != "" {
			req.Header.Set("X-Voter-Token", token)
		}
		w := httptest.NewRecorder()
		handler.SubmitVote(w, req)
		return w
	}

	t.Run("valid single vote", func(t *testing.T) {
		w := submit("VT88MN", "voter-a", `{"options":["Tacos"]}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.SubmitVoteResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Votes["Tacos"] != 1 {
			t.Errorf("Expected Tacos tally 1, got %d", resp.Votes["Tacos"])
		}
		if resp.TotalVotes != 1 {
			t.Errorf("Expected total_votes 1, got %d", resp.TotalVotes)
		}
	})

	t.Run("multi-select vote on multi poll", func(t *testing.T) {
		w := submit("MU55LT", "voter-b", `{"options":["Onion","Basil"]}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.SubmitVoteResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Votes["Onion"] != 1 || resp.Votes["Basil"] != 1 {
			t.Errorf("Expected both selections tallied, got %v", resp.Votes)
		}
	})

	t.Run("missing voter token", func(t *testing.T) {
		w := submit("VT88MN", "", `{"options":["Tacos"]}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := submit("VT88MN", "voter-c", `{not json}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		w := submit("VT88MN", "voter-c", `{"options":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("repeated label in selection", func(t *testing.T) {
		w := submit("MU55LT", "voter-c", `{"options":["Onion","Onion"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		w := submit("VT88MN", "voter-c", `{"options":["Sushi"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("multiple selections on single poll", func(t *testing.T) {
		w := submit("VT88MN", "voter-c", `{"options":["Tacos","Ramen"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejected voter can retry", func(t *testing.T) {
		// The failed attempts above must not have burned voter-c's vote
		w := submit("VT88MN", "voter-c", `{"options":["Ramen"]}`)
		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201 after earlier rejections, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("duplicate voter", func(t *testing.T) {
		w := submit("VT88MN", "voter-a", `{"options":["Pizza"]}`)
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d. Body: %s", w.Code, w.Body.String())
		}

		// Tallies must be untouched by the duplicate
		w = submit("VT88MN", "voter-d", `{"options":["Tacos"]}`)
		var resp models.SubmitVoteResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Votes["Pizza"] != 0 {
			t.Errorf("Expected Pizza tally 0 after duplicate rejection, got %d", resp.Votes["Pizza"])
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		w := submit("ZZZZZZ", "voter-e", `{"options":["Tacos"]}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
