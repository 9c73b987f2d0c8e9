// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCode = errors.New("invalid session code")

// CodeLength is the number of characters in a session code.
const CodeLength = 6

// codeAlphabet is uppercase alphanumeric only: codes are read aloud and
// typed from phones, so no lowercase and no symbols.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode creates a random session code from a crypto-grade source.
// Uniqueness against the store is the caller's job: the store rejects a
// colliding insert and creation retries with a fresh code.
func GenerateCode() (string, error) {
	// 252 is the largest multiple of len(codeAlphabet) below 256; rejecting
	// bytes at or above it keeps the character distribution uniform.
	const limit = byte(252)

	code := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)
	for len(code) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate session code: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(code) == CodeLength {
				break
			}
		}
	}
	return string(code), nil
}

// NewVoterToken creates an opaque token identifying one participant's page
// session. One vote is recorded per (session code, voter token) pair.
func NewVoterToken() string {
	return uuid.NewString()
}

// NormalizeCode uppercases and trims a human-entered session code and
// validates its shape. Returns ErrInvalidCode for anything that cannot be
// a code, so handlers can 404 without touching the store.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != CodeLength {
		return "", ErrInvalidCode
	}
	for _, c := range code {
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}
