package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/logging"
)

type chargeWriter interface {
	Create(ctx context.Context, charge *domain.Charge) error
	CreateTx(ctx context.Context, tx *sql.Tx, charge *domain.Charge) error
}

type ChargeService struct {
	students studentReader
	charges  chargeWriter
	db       *sql.DB
}

func NewChargeService(students studentReader, charges chargeWriter, db *sql.DB) *ChargeService {
	return &ChargeService{
		students: students,
		charges:  charges,
		db:       db,
	}
}

// AddCharge records a single tuition charge for (studentNo, term).
func (s *ChargeService) AddCharge(ctx context.Context, studentNo, term string, amount domain.Money) (*domain.Charge, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("AddCharge: %w", domain.ErrInvalidAmount)
	}

	studentNo = strings.TrimSpace(studentNo)
	term = strings.TrimSpace(term)
	if studentNo == "" || term == "" {
		return nil, fmt.Errorf("AddCharge: %w", domain.ErrInvalidRequest)
	}

	student, err := s.students.GetByStudentNo(ctx, studentNo)
	if err != nil {
		return nil, fmt.Errorf("AddCharge: %w", err)
	}

	charge := &domain.Charge{
		ID:        uuid.New(),
		StudentID: student.ID,
		Term:      term,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.charges.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("AddCharge: %w", err)
	}

	logging.FromContext(ctx).Info("tuition charge added",
		"charge_id", charge.ID,
		"student_no", studentNo,
		"term", term,
		"amount", amount.String(),
	)

	return charge, nil
}

// ImportCSV reads rows of studentNo,term,amount (header line skipped) and
// inserts them in a single transaction: a bad row aborts the whole upload
// with its line number.
func (s *ChargeService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ImportCSV: begin tx: %w", err)
	}
	defer tx.Rollback()

	imported := 0
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("ImportCSV: line %d: %w", line, domain.ErrInvalidRequest)
		}
		if line == 1 {
			continue // header
		}

		if len(record) != 3 {
			return 0, fmt.Errorf("ImportCSV: line %d: expected 3 fields, got %d: %w", line, len(record), domain.ErrInvalidRequest)
		}

		studentNo := strings.TrimSpace(record[0])
		term := strings.TrimSpace(record[1])

		amount, err := domain.ParseMoney(record[2])
		if err != nil || !amount.IsPositive() {
			return 0, fmt.Errorf("ImportCSV: line %d: invalid amount %q: %w", line, record[2], domain.ErrInvalidRequest)
		}

		student, err := s.students.GetByStudentNo(ctx, studentNo)
		if err != nil {
			if errors.Is(err, domain.ErrStudentNotFound) {
				return 0, fmt.Errorf("ImportCSV: line %d: student %s: %w", line, studentNo, domain.ErrStudentNotFound)
			}
			return 0, fmt.Errorf("ImportCSV: line %d: %w", line, err)
		}

		charge := &domain.Charge{
			ID:        uuid.New(),
			StudentID: student.ID,
			Term:      term,
			Amount:    amount,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.charges.CreateTx(ctx, tx, charge); err != nil {
			return 0, fmt.Errorf("ImportCSV: line %d: %w", line, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("ImportCSV: commit: %w", err)
	}

	logging.FromContext(ctx).Info("batch tuition import completed", "rows", imported)
	return imported, nil
}
