package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrNoTuitionCharged     = errors.New("no tuition charged for term")
	ErrNoRemainingBalance   = errors.New("no remaining balance")
	ErrAmountExceedsBalance = errors.New("amount exceeds remaining balance")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrIdempotencyConflict  = errors.New("idempotency key already used with a different request")
)
