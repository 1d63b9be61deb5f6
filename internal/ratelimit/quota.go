// Package ratelimit implements the per-identity daily query quota for the
// public tuition balance endpoint.
package ratelimit

import "time"

// Decision is the outcome of a single quota check. Remaining always
// reflects the committed post-increment count, never a speculative value.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Store is the atomic check-and-increment capability consulted by the rate
// limit guard. Implementations must be linearizable per (identity, UTC day)
// key: with one slot left, concurrent calls for the same identity must not
// both be allowed.
type Store interface {
	CheckAndIncrement(identity string) Decision
}
