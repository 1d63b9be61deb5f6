package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/service"
)

type stubPaymentApplier struct {
	outcome *service.PaymentOutcome
	err     error
}

func (s *stubPaymentApplier) ApplyPayment(context.Context, string, string, domain.Money) (*service.PaymentOutcome, error) {
	return s.outcome, s.err
}

func postPay(t *testing.T, h *PaymentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Pay(rec, req)
	return rec
}

func TestPay_FullyPaid(t *testing.T) {
	b := domain.NewBalance(domain.MustMoney("12000.00"), domain.MustMoney("12000.00"))
	h := NewPaymentHandler(&stubPaymentApplier{
		outcome: &service.PaymentOutcome{Balance: b, FullyPaid: true},
	})

	rec := postPay(t, h, `{"studentNo":"20201234","term":"2025-Spring","amount":9000.00}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp payResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, statusSuccessful, resp.Status)
	require.Contains(t, resp.Message, "fully paid")
	require.Equal(t, "0.00", resp.Balance.String())
}

func TestPay_Partial(t *testing.T) {
	b := domain.NewBalance(domain.MustMoney("12000.00"), domain.MustMoney("3000.00"))
	h := NewPaymentHandler(&stubPaymentApplier{
		outcome: &service.PaymentOutcome{Balance: b},
	})

	rec := postPay(t, h, `{"studentNo":"20201234","term":"2025-Spring","amount":3000.00}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp payResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, statusSuccessful, resp.Status)
	require.Equal(t, "9000.00", resp.Balance.String())
}

func TestPay_ExceedsBalanceCarriesTotals(t *testing.T) {
	b := domain.NewBalance(domain.MustMoney("12000.00"), domain.MustMoney("11000.00"))
	h := NewPaymentHandler(&stubPaymentApplier{
		outcome: &service.PaymentOutcome{Balance: b},
		err:     fmt.Errorf("ApplyPayment: %w", domain.ErrAmountExceedsBalance),
	})

	rec := postPay(t, h, `{"studentNo":"20201234","term":"2025-Spring","amount":5000.00}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp payResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, statusError, resp.Status)
	require.Contains(t, resp.Message, "(1000.00)")
	require.Equal(t, "12000.00", resp.TuitionTotal.String())
	require.Equal(t, "11000.00", resp.Paid.String())
	require.Equal(t, "1000.00", resp.Balance.String())
}

func TestPay_StudentNotFound(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentApplier{
		err: fmt.Errorf("ApplyPayment: %w", domain.ErrStudentNotFound),
	})

	rec := postPay(t, h, `{"studentNo":"unknown","term":"2025-Spring","amount":100.00}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp payResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, statusError, resp.Status)
}

func TestPay_MalformedBody(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentApplier{})

	rec := postPay(t, h, `{"studentNo":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}
