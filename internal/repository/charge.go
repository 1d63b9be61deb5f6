package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
)

type ChargeRepository struct {
	db *sql.DB
}

func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func (r *ChargeRepository) Create(ctx context.Context, charge *domain.Charge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tuition_charges (id, student_id, term, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		charge.ID, charge.StudentID, charge.Term, charge.Amount, charge.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// CreateTx inserts a charge inside an existing transaction. The batch
// importer uses it so a CSV upload commits all rows or none.
func (r *ChargeRepository) CreateTx(ctx context.Context, tx *sql.Tx, charge *domain.Charge) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO tuition_charges (id, student_id, term, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		charge.ID, charge.StudentID, charge.Term, charge.Amount, charge.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateTx: %w", err)
	}
	return nil
}

// SumForTerm returns the total charged for (student, term); zero when no
// rows exist.
func (r *ChargeRepository) SumForTerm(ctx context.Context, studentID uuid.UUID, term string) (domain.Money, error) {
	return sumAmount(ctx, r.db,
		`SELECT COALESCE(SUM(amount), 0) FROM tuition_charges WHERE student_id = $1 AND term = $2`,
		studentID, term)
}

func (r *ChargeRepository) SumForTermTx(ctx context.Context, tx *sql.Tx, studentID uuid.UUID, term string) (domain.Money, error) {
	return sumAmount(ctx, tx,
		`SELECT COALESCE(SUM(amount), 0) FROM tuition_charges WHERE student_id = $1 AND term = $2`,
		studentID, term)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sumAmount(ctx context.Context, q querier, query string, studentID uuid.UUID, term string) (domain.Money, error) {
	var total domain.Money
	if err := q.QueryRowContext(ctx, query, studentID, term).Scan(&total); err != nil {
		return domain.ZeroMoney, fmt.Errorf("sumAmount: %w", err)
	}
	return total, nil
}
