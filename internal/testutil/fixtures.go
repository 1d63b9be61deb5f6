package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
)

// SeedStudent inserts a student row and returns it.
func SeedStudent(t *testing.T, db *sql.DB, studentNo, fullName string) *domain.Student {
	t.Helper()

	s := &domain.Student{
		ID:        uuid.New(),
		StudentNo: studentNo,
		FullName:  &fullName,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO students (id, student_no, full_name, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.StudentNo, s.FullName, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed student %s: %v", studentNo, err)
	}
	return s
}

// SeedCharge inserts a tuition charge for the student.
func SeedCharge(t *testing.T, db *sql.DB, studentID uuid.UUID, term, amount string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO tuition_charges (id, student_id, term, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), studentID, term, domain.MustMoney(amount), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed charge: %v", err)
	}
}

// SeedPayment inserts a payment for the student.
func SeedPayment(t *testing.T, db *sql.DB, studentID uuid.UUID, term, amount string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO payments (id, student_id, term, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), studentID, term, domain.MustMoney(amount), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

// CountPayments returns the number of payment rows for (student, term).
func CountPayments(t *testing.T, db *sql.DB, studentID uuid.UUID, term string) int {
	t.Helper()

	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM payments WHERE student_id = $1 AND term = $2`,
		studentID, term,
	).Scan(&n)
	if err != nil {
		t.Fatalf("count payments: %v", err)
	}
	return n
}
