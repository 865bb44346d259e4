// Package idempotency stores the responses of mutating requests so that a retried request
// carrying the same Idempotency-Key receives the original response.
package idempotency

import (
	"context"
	"time"
)

// StoredResponse is a completed response kept for replay.
type StoredResponse struct {
	Fingerprint string    `json:"fingerprint"` // Hash of the request body
	Status      int       `json:"status"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	StoredAt    time.Time `json:"storedAt"`
}

// Store keeps responses by key for a limited time.
type Store interface {
	// Get returns the response stored under key, or false when there is none.
	Get(ctx context.Context, key string) (*StoredResponse, bool, error)

	// Save stores resp under key for ttl unless a response is already stored.
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
}
