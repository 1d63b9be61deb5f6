package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusware/tuition-api/internal/domain"
)

const studentColumns = `id, student_no, full_name, created_at`

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*domain.Student, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_no = $1`, studentNo,
	)
	s, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByStudentNo: %w", domain.ErrStudentNotFound)
		}
		return nil, fmt.Errorf("GetByStudentNo: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (id, student_no, full_name, created_at)
		VALUES ($1, $2, $3, $4)`,
		student.ID, student.StudentNo, student.FullName, student.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func scanStudent(s scanner) (*domain.Student, error) {
	var st domain.Student
	err := s.Scan(&st.ID, &st.StudentNo, &st.FullName, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
