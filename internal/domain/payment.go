package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is an immutable payment row, created only after the
// payment applier's validation succeeds.
type PaymentRecord struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Term      string
	Amount    Money
	CreatedAt time.Time
}

// Balance is derived, never stored: recomputed from the charge and payment
// sums on every read.
type Balance struct {
	TuitionTotal Money
	Paid         Money
	Balance      Money
}

func NewBalance(tuitionTotal, paid Money) Balance {
	return Balance{
		TuitionTotal: tuitionTotal,
		Paid:         paid,
		Balance:      tuitionTotal.Sub(paid),
	}
}
