// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/db"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

var testDBCounter atomic.Int64

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own database; shared cache plus a single connection
// keeps it alive for the lifetime of the *sql.DB and serializes writes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	n := testDBCounter.Add(1)
	dsn := fmt.Sprintf("file:testutil%d?mode=memory&cache=shared", n)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3321,
		DatabaseType: "sqlite",
		DatabaseURL:  "file:unused?mode=memory",
		BaseURL:      "http://test.local",
	}
}

// CreateTestPoll inserts a poll through the store and returns its session code
func CreateTestPoll(t *testing.T, st *store.Store, code string, options []string, allowMultiple bool) string {
	t.Helper()

	state := models.PollState{
		SessionCode:     code,
		Question:        "Test question?",
		Options:         options,
		ShowResultsLive: true,
		AllowMultiple:   allowMultiple,
		Votes:           map[string]int{},
		CreatedAt:       time.Now().UTC(),
	}
	if err := st.Create(context.Background(), state); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return code
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
