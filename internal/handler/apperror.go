package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrForbidden          = &AppError{http.StatusForbidden, "FORBIDDEN", "Insufficient role for this operation"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrStudentNotFound      = &AppError{http.StatusNotFound, "STUDENT_NOT_FOUND", "Student not found"}
	ErrInvalidAmount        = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive"}
	ErrNoTuitionCharged     = &AppError{http.StatusBadRequest, "NO_TUITION_FOR_TERM", "No tuition charged for term"}
	ErrNoRemainingBalance   = &AppError{http.StatusBadRequest, "NO_REMAINING_BALANCE", "No remaining balance for this term"}
	ErrAmountExceedsBalance = &AppError{http.StatusBadRequest, "AMOUNT_EXCEEDS_BALANCE", "Amount exceeds remaining balance"}
	ErrRateLimited          = &AppError{http.StatusTooManyRequests, "RATE_LIMITED", "Daily query limit exceeded"}
	ErrIdempotencyConflict  = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
