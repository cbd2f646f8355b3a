package model

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for items and quotes.
// Callers must not parse or reuse it.
func NewID() string {
	return uuid.NewString()
}
