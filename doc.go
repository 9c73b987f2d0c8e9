// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is a live group polling service: an author creates a poll and
shares a six-character session code, participants vote from their
phones, and every connected screen sees tallies update in real time.

# Starting the Server

The server runs on SQLite out of the box:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3321 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3321)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - BASE_URL (-base-url): Public base for share links
  - LOG_LEVEL: debug, info, warn, error (default: info)
  - LOG_FORMAT: text or json (default: text)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, live results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - session: Session code and voter token generation
  - store: Poll persistence and live fan-out
  - db: Schema creation
  - telemetry: Prometheus metrics
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
