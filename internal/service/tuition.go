package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/repository"
)

type studentReader interface {
	GetByStudentNo(ctx context.Context, studentNo string) (*domain.Student, error)
}

type chargeSummer interface {
	SumForTerm(ctx context.Context, studentID uuid.UUID, term string) (domain.Money, error)
}

type paymentSummer interface {
	SumForTerm(ctx context.Context, studentID uuid.UUID, term string) (domain.Money, error)
}

type unpaidLister interface {
	UnpaidForTerm(ctx context.Context, term string, limit, offset int) ([]repository.UnpaidStudent, int, error)
}

type TuitionService struct {
	students studentReader
	charges  chargeSummer
	payments paymentSummer
	reports  unpaidLister
}

func NewTuitionService(students studentReader, charges chargeSummer, payments paymentSummer, reports unpaidLister) *TuitionService {
	return &TuitionService{
		students: students,
		charges:  charges,
		payments: payments,
		reports:  reports,
	}
}

// ComputeBalance recomputes the outstanding balance for (studentNo, term)
// from the authoritative charge and payment sums. Blank inputs and unknown
// students are reported as not found, never as a fault. The two sums are
// read without locking; skew against an in-flight payment is benign.
func (s *TuitionService) ComputeBalance(ctx context.Context, studentNo, term string) (*domain.Balance, error) {
	studentNo = strings.TrimSpace(studentNo)
	term = strings.TrimSpace(term)
	if studentNo == "" || term == "" {
		return nil, fmt.Errorf("ComputeBalance: blank input: %w", domain.ErrNotFound)
	}

	student, err := s.students.GetByStudentNo(ctx, studentNo)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return nil, fmt.Errorf("ComputeBalance: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ComputeBalance: %w", err)
	}

	charged, err := s.charges.SumForTerm(ctx, student.ID, term)
	if err != nil {
		return nil, fmt.Errorf("ComputeBalance: charges: %w", err)
	}

	paid, err := s.payments.SumForTerm(ctx, student.ID, term)
	if err != nil {
		return nil, fmt.Errorf("ComputeBalance: payments: %w", err)
	}

	balance := domain.NewBalance(charged, paid)
	return &balance, nil
}

type UnpaidPage struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	Items      []repository.UnpaidStudent
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UnpaidStudents lists students owing a positive balance for the term,
// paginated and ordered by student number.
func (s *TuitionService) UnpaidStudents(ctx context.Context, term string, page, pageSize int) (*UnpaidPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("UnpaidStudents: term required: %w", domain.ErrInvalidRequest)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.reports.UnpaidForTerm(ctx, term, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("UnpaidStudents: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &UnpaidPage{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}
