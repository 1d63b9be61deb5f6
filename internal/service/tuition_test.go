package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/repository"
)

type fakeStudents map[string]*domain.Student

func (f fakeStudents) GetByStudentNo(_ context.Context, studentNo string) (*domain.Student, error) {
	s, ok := f[studentNo]
	if !ok {
		return nil, fmt.Errorf("GetByStudentNo: %w", domain.ErrStudentNotFound)
	}
	return s, nil
}

type fakeSums map[string]domain.Money

func (f fakeSums) SumForTerm(_ context.Context, studentID uuid.UUID, term string) (domain.Money, error) {
	return f[studentID.String()+"|"+term], nil
}

type fakeReports struct {
	items []repository.UnpaidStudent
	total int

	gotTerm   string
	gotLimit  int
	gotOffset int
}

func (f *fakeReports) UnpaidForTerm(_ context.Context, term string, limit, offset int) ([]repository.UnpaidStudent, int, error) {
	f.gotTerm, f.gotLimit, f.gotOffset = term, limit, offset
	return f.items, f.total, nil
}

func testStudent(studentNo string) *domain.Student {
	return &domain.Student{
		ID:        uuid.New(),
		StudentNo: studentNo,
		CreatedAt: time.Now().UTC(),
	}
}

func TestComputeBalance(t *testing.T) {
	student := testStudent("20201234")
	students := fakeStudents{"20201234": student}
	key := student.ID.String() + "|2025-Spring"

	charges := fakeSums{key: domain.MustMoney("12000.00")}
	payments := fakeSums{key: domain.MustMoney("3000.00")}

	svc := NewTuitionService(students, charges, payments, &fakeReports{})

	b, err := svc.ComputeBalance(context.Background(), "20201234", "2025-Spring")
	require.NoError(t, err)
	require.Equal(t, "12000.00", b.TuitionTotal.String())
	require.Equal(t, "3000.00", b.Paid.String())
	require.Equal(t, "9000.00", b.Balance.String())
}

func TestComputeBalance_IdempotentRead(t *testing.T) {
	student := testStudent("20201234")
	students := fakeStudents{"20201234": student}
	key := student.ID.String() + "|2025-Spring"
	charges := fakeSums{key: domain.MustMoney("12000.00")}
	payments := fakeSums{key: domain.MustMoney("3000.00")}

	svc := NewTuitionService(students, charges, payments, &fakeReports{})

	first, err := svc.ComputeBalance(context.Background(), "20201234", "2025-Spring")
	require.NoError(t, err)
	second, err := svc.ComputeBalance(context.Background(), "20201234", "2025-Spring")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeBalance_NotFound(t *testing.T) {
	students := fakeStudents{"20201234": testStudent("20201234")}
	svc := NewTuitionService(students, fakeSums{}, fakeSums{}, &fakeReports{})

	tests := []struct {
		name      string
		studentNo string
		term      string
	}{
		{name: "unknown student", studentNo: "00000000", term: "2025-Spring"},
		{name: "blank student", studentNo: "   ", term: "2025-Spring"},
		{name: "blank term", studentNo: "20201234", term: ""},
		{name: "whitespace term", studentNo: "20201234", term: "  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ComputeBalance(context.Background(), tc.studentNo, tc.term)
			require.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestComputeBalance_NoRowsDefaultsToZero(t *testing.T) {
	students := fakeStudents{"20201234": testStudent("20201234")}
	svc := NewTuitionService(students, fakeSums{}, fakeSums{}, &fakeReports{})

	b, err := svc.ComputeBalance(context.Background(), "20201234", "2099-Fall")
	require.NoError(t, err)
	require.True(t, b.TuitionTotal.IsZero())
	require.True(t, b.Paid.IsZero())
	require.True(t, b.Balance.IsZero())
}

func TestUnpaidStudents_Pagination(t *testing.T) {
	reports := &fakeReports{total: 45}
	svc := NewTuitionService(fakeStudents{}, fakeSums{}, fakeSums{}, reports)

	page, err := svc.UnpaidStudents(context.Background(), "2025-Spring", 2, 20)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 20, page.PageSize)
	require.Equal(t, 45, page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 20, reports.gotLimit)
	require.Equal(t, 20, reports.gotOffset)
}

func TestUnpaidStudents_ClampsInputs(t *testing.T) {
	reports := &fakeReports{}
	svc := NewTuitionService(fakeStudents{}, fakeSums{}, fakeSums{}, reports)

	_, err := svc.UnpaidStudents(context.Background(), "2025-Spring", -3, 1000)
	require.NoError(t, err)
	require.Equal(t, maxPageSize, reports.gotLimit)
	require.Equal(t, 0, reports.gotOffset)

	_, err = svc.UnpaidStudents(context.Background(), "2025-Spring", 1, 0)
	require.NoError(t, err)
	require.Equal(t, defaultPageSize, reports.gotLimit)

	_, err = svc.UnpaidStudents(context.Background(), "   ", 1, 20)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}
