// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3321)
  - DatabaseURL: Connection string (defaults to a local SQLite file)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - BaseURL: Base URL for share links (optional; request host otherwise)

# CLI Flags

	-p         Server port
	-d         Database URL
	-t         Database type
	-base-url  Base URL for share links

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	BASE_URL      → -base-url

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_TYPE is postgres and no DATABASE_URL is given

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(st, cfg)
*/
package cliparse
