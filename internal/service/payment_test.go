package service

import (
	"context"
	"testing"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		charged string
		paid    string
		wantErr error
	}{
		{
			name:   "partial payment within balance",
			amount: "3000.00", charged: "12000.00", paid: "3000.00",
		},
		{
			name:   "exact remaining balance",
			amount: "9000.00", charged: "12000.00", paid: "3000.00",
		},
		{
			name:   "no tuition charged",
			amount: "100.00", charged: "0.00", paid: "0.00",
			wantErr: domain.ErrNoTuitionCharged,
		},
		{
			name:   "already fully paid",
			amount: "0.01", charged: "12000.00", paid: "12000.00",
			wantErr: domain.ErrNoRemainingBalance,
		},
		{
			name:   "one cent over balance",
			amount: "9000.01", charged: "12000.00", paid: "3000.00",
			wantErr: domain.ErrAmountExceedsBalance,
		},
		{
			name:   "no-tuition wins over exceeds",
			amount: "5000.00", charged: "0.00", paid: "0.00",
			wantErr: domain.ErrNoTuitionCharged,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePaymentAmount(
				domain.MustMoney(tc.amount),
				domain.MustMoney(tc.charged),
				domain.MustMoney(tc.paid),
			)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApplyPayment_RejectsBeforeStoreAccess(t *testing.T) {
	svc := NewPaymentService(fakeStudents{}, nil, nil, nil)

	_, err := svc.ApplyPayment(context.Background(), "20201234", "2025-Spring", domain.MustMoney("0.00"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.ApplyPayment(context.Background(), "20201234", "2025-Spring", domain.MustMoney("-5.00"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.ApplyPayment(context.Background(), "   ", "2025-Spring", domain.MustMoney("100.00"))
	require.ErrorIs(t, err, domain.ErrStudentNotFound)
}

func TestApplyPayment_UnknownStudent(t *testing.T) {
	svc := NewPaymentService(fakeStudents{}, nil, nil, nil)

	_, err := svc.ApplyPayment(context.Background(), "99999999", "2025-Spring", domain.MustMoney("100.00"))
	require.ErrorIs(t, err, domain.ErrStudentNotFound)
}
