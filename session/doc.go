// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session generates and validates the identifiers used by the poll
feature.

# Session Codes

A session code is the short, human-enterable identifier for one poll:

	code, err := session.GenerateCode() // e.g. "K7Q2ZD"

Codes are 6 uppercase alphanumeric characters drawn from crypto/rand.
Generation carries no uniqueness guarantee by itself; the store's primary
key rejects collisions and poll creation retries with a fresh code.

# Voter Tokens

Voter tokens scope the one-vote guard to a participant page session:

	token := session.NewVoterToken()

# Normalization

NormalizeCode uppercases, trims, and shape-checks codes arriving from URL
paths before they reach the store.
*/
package session
