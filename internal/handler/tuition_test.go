package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusware/tuition-api/internal/domain"
)

type stubBalanceReader struct {
	balance *domain.Balance
	err     error
}

func (s *stubBalanceReader) ComputeBalance(_ context.Context, studentNo, term string) (*domain.Balance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.balance, nil
}

func TestTuitionQuery_OK(t *testing.T) {
	b := domain.NewBalance(domain.MustMoney("12000.00"), domain.MustMoney("3000.00"))
	h := NewTuitionHandler(&stubBalanceReader{balance: &b})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mobile/tuition?studentNo=20201234&term=2025-Spring", nil)
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"tuitionTotal":12000.00,"paid":3000.00,"balance":9000.00}`,
		rec.Body.String(),
	)
}

func TestTuitionQuery_NotFound(t *testing.T) {
	h := NewTuitionHandler(&stubBalanceReader{
		err: fmt.Errorf("ComputeBalance: %w", domain.ErrNotFound),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mobile/tuition?studentNo=unknown&term=2025-Spring", nil)
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "RESOURCE_NOT_FOUND", resp.Error.Code)
}
