// Package domain contains entity without logic, just meta-data
package domain

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxUserIDLen = 64

type (
	// ConnID identifies one live connection. Stable for the connection's lifetime.
	ConnID string
	// UserID is the caller-facing identity used in presence entries.
	UserID string
)

// NewConnID avoids ad-hoc id generation in adapters.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// NormalizeUserID trims overlong ids instead of rejecting them.
// The cut never splits a multi-byte rune.
func NormalizeUserID(raw string) UserID {
	if len(raw) <= MaxUserIDLen {
		return UserID(raw)
	}
	cut := MaxUserIDLen
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return UserID(raw[:cut])
}
