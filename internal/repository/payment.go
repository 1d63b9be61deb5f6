package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
)

const paymentColumns = `id, student_id, term, amount, created_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateTx inserts a payment inside the applier's transaction so the
// balance re-read and the insert commit as one unit.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx *sql.Tx, payment *domain.PaymentRecord) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payments (id, student_id, term, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		payment.ID, payment.StudentID, payment.Term, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateTx: %w", err)
	}
	return nil
}

// SumForTerm returns the total paid for (student, term); zero when no rows
// exist.
func (r *PaymentRepository) SumForTerm(ctx context.Context, studentID uuid.UUID, term string) (domain.Money, error) {
	return sumAmount(ctx, r.db,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE student_id = $1 AND term = $2`,
		studentID, term)
}

func (r *PaymentRepository) SumForTermTx(ctx context.Context, tx *sql.Tx, studentID uuid.UUID, term string) (domain.Money, error) {
	return sumAmount(ctx, tx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE student_id = $1 AND term = $2`,
		studentID, term)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id,
	)
	var p domain.PaymentRecord
	err := row.Scan(&p.ID, &p.StudentID, &p.Term, &p.Amount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &p, nil
}
