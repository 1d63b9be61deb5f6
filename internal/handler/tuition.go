package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/logging"
)

type balanceReader interface {
	ComputeBalance(ctx context.Context, studentNo, term string) (*domain.Balance, error)
}

type TuitionHandler struct {
	tuition balanceReader
}

func NewTuitionHandler(tuition balanceReader) *TuitionHandler {
	return &TuitionHandler{tuition: tuition}
}

type balanceDTO struct {
	TuitionTotal domain.Money `json:"tuitionTotal"`
	Paid         domain.Money `json:"paid"`
	Balance      domain.Money `json:"balance"`
}

func toBalanceDTO(b domain.Balance) balanceDTO {
	return balanceDTO{
		TuitionTotal: b.TuitionTotal,
		Paid:         b.Paid,
		Balance:      b.Balance,
	}
}

// Query serves both the public mobile endpoint (behind the rate limit
// guard) and the authenticated banking endpoint; the difference is purely
// middleware.
func (h *TuitionHandler) Query(w http.ResponseWriter, r *http.Request) {
	studentNo := r.URL.Query().Get("studentNo")
	term := r.URL.Query().Get("term")

	balance, err := h.tuition.ComputeBalance(r.Context(), studentNo, term)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			RespondAppError(w, ErrResourceNotFound, nil)
			return
		}
		logging.FromContext(r.Context()).Error("balance query failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, toBalanceDTO(*balance))
}
