package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusware/tuition-api/internal/domain"
)

// UnpaidStudent is a read model for the admin unpaid report: one row per
// student with an outstanding balance for the term.
type UnpaidStudent struct {
	StudentNo    string
	FullName     *string
	Term         string
	TuitionTotal domain.Money
	Paid         domain.Money
	Balance      domain.Money
}

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const unpaidBalances = `
	SELECT s.student_no, s.full_name,
		COALESCE((SELECT SUM(c.amount) FROM tuition_charges c WHERE c.student_id = s.id AND c.term = $1), 0) AS tuition_total,
		COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.student_id = s.id AND p.term = $1), 0) AS paid
	FROM students s`

// UnpaidForTerm lists students whose balance for the term is positive,
// ordered by student number. Returns the page plus the total match count.
func (r *ReportRepository) UnpaidForTerm(ctx context.Context, term string, limit, offset int) ([]UnpaidStudent, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (`+unpaidBalances+`) b WHERE b.tuition_total - b.paid > 0`, term,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("UnpaidForTerm: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT b.student_no, b.full_name, b.tuition_total, b.paid, b.tuition_total - b.paid AS balance
		FROM (`+unpaidBalances+`) b
		WHERE b.tuition_total - b.paid > 0
		ORDER BY b.student_no
		LIMIT $2 OFFSET $3`,
		term, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("UnpaidForTerm: %w", err)
	}
	defer rows.Close()

	var items []UnpaidStudent
	for rows.Next() {
		u := UnpaidStudent{Term: term}
		if err := rows.Scan(&u.StudentNo, &u.FullName, &u.TuitionTotal, &u.Paid, &u.Balance); err != nil {
			return nil, 0, fmt.Errorf("UnpaidForTerm: scan: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("UnpaidForTerm: rows: %w", err)
	}
	return items, total, nil
}
