package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/keylock"
	"github.com/campusware/tuition-api/internal/logging"
)

type chargeTxSummer interface {
	SumForTermTx(ctx context.Context, tx *sql.Tx, studentID uuid.UUID, term string) (domain.Money, error)
}

type paymentWriter interface {
	SumForTermTx(ctx context.Context, tx *sql.Tx, studentID uuid.UUID, term string) (domain.Money, error)
	CreateTx(ctx context.Context, tx *sql.Tx, payment *domain.PaymentRecord) error
}

type PaymentService struct {
	students studentReader
	charges  chargeTxSummer
	payments paymentWriter
	locks    *keylock.KeyedMutex
	db       *sql.DB
}

func NewPaymentService(students studentReader, charges chargeTxSummer, payments paymentWriter, db *sql.DB) *PaymentService {
	return &PaymentService{
		students: students,
		charges:  charges,
		payments: payments,
		locks:    keylock.New(),
		db:       db,
	}
}

// PaymentOutcome reports the totals after a successful payment, or the
// totals read at validation time when a balance-class rejection occurs, so
// the caller can always render the true remaining amount.
type PaymentOutcome struct {
	Balance   domain.Balance
	FullyPaid bool
}

// ApplyPayment validates and commits one payment for (studentNo, term).
// The balance re-read and the insert run inside one transaction, and the
// whole validate+commit unit is serialized per (student, term) by a keyed
// mutex, so two racing payments can never jointly exceed the outstanding
// balance. Payments for different keys proceed independently.
func (s *PaymentService) ApplyPayment(ctx context.Context, studentNo, term string, amount domain.Money) (*PaymentOutcome, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("ApplyPayment: %w", domain.ErrInvalidAmount)
	}

	studentNo = strings.TrimSpace(studentNo)
	term = strings.TrimSpace(term)
	if studentNo == "" {
		return nil, fmt.Errorf("ApplyPayment: %w", domain.ErrStudentNotFound)
	}

	student, err := s.students.GetByStudentNo(ctx, studentNo)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return nil, fmt.Errorf("ApplyPayment: %w", domain.ErrStudentNotFound)
		}
		return nil, fmt.Errorf("ApplyPayment: %w", err)
	}

	unlock := s.locks.Lock(student.ID.String() + "|" + term)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: begin tx: %w", err)
	}
	defer tx.Rollback()

	charged, err := s.charges.SumForTermTx(ctx, tx, student.ID, term)
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: charges: %w", err)
	}

	paid, err := s.payments.SumForTermTx(ctx, tx, student.ID, term)
	if err != nil {
		return nil, fmt.Errorf("ApplyPayment: payments: %w", err)
	}

	if err := validatePaymentAmount(amount, charged, paid); err != nil {
		// Rejection still reports the totals read at validation time.
		return &PaymentOutcome{Balance: domain.NewBalance(charged, paid)}, fmt.Errorf("ApplyPayment: %w", err)
	}

	record := &domain.PaymentRecord{
		ID:        uuid.New(),
		StudentID: student.ID,
		Term:      term,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.payments.CreateTx(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("ApplyPayment: create payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ApplyPayment: commit: %w", err)
	}

	balance := domain.NewBalance(charged, paid.Add(amount))

	logging.FromContext(ctx).Info("payment applied",
		"payment_id", record.ID,
		"student_no", studentNo,
		"term", term,
		"amount", amount.String(),
		"new_balance", balance.Balance.String(),
	)

	return &PaymentOutcome{
		Balance:   balance,
		FullyPaid: balance.Balance.IsZero(),
	}, nil
}

// validatePaymentAmount applies the balance checks in order; the first
// failing check wins.
func validatePaymentAmount(amount, charged, paid domain.Money) error {
	if !charged.IsPositive() {
		return domain.ErrNoTuitionCharged
	}

	balance := charged.Sub(paid)
	if !balance.IsPositive() {
		return domain.ErrNoRemainingBalance
	}
	if amount.GreaterThan(balance) {
		return domain.ErrAmountExceedsBalance
	}
	return nil
}
