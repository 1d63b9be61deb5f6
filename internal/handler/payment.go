package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/logging"
	"github.com/campusware/tuition-api/internal/service"
)

type paymentApplier interface {
	ApplyPayment(ctx context.Context, studentNo, term string, amount domain.Money) (*service.PaymentOutcome, error)
}

type PaymentHandler struct {
	payments paymentApplier
}

func NewPaymentHandler(payments paymentApplier) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type payRequest struct {
	StudentNo string       `json:"studentNo"`
	Term      string       `json:"term"`
	Amount    domain.Money `json:"amount"`
}

// payResponse carries the totals on every outcome, success or rejection,
// so the client can always render the true remaining balance.
type payResponse struct {
	Status       string       `json:"status"`
	Message      string       `json:"message"`
	TuitionTotal domain.Money `json:"tuitionTotal"`
	Paid         domain.Money `json:"paid"`
	Balance      domain.Money `json:"balance"`
}

const (
	statusSuccessful = "Successful"
	statusError      = "Error"
)

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	outcome, err := h.payments.ApplyPayment(r.Context(), req.StudentNo, req.Term, req.Amount)
	if err != nil {
		h.respondRejection(w, r, outcome, err)
		return
	}

	msg := "Partial payment recorded."
	if outcome.FullyPaid {
		msg = "Payment completed; tuition fully paid."
	}

	RespondJSON(w, http.StatusOK, payResponse{
		Status:       statusSuccessful,
		Message:      msg,
		TuitionTotal: outcome.Balance.TuitionTotal,
		Paid:         outcome.Balance.Paid,
		Balance:      outcome.Balance.Balance,
	})
}

func (h *PaymentHandler) respondRejection(w http.ResponseWriter, r *http.Request, outcome *service.PaymentOutcome, err error) {
	appErr := appErrorFor(err)
	if appErr == ErrInternalError {
		logging.FromContext(r.Context()).Error("payment failed", "error", err)
	}

	resp := payResponse{
		Status:  statusError,
		Message: appErr.Message,
	}
	// Balance-class rejections carry the totals read at validation time.
	if outcome != nil {
		resp.TuitionTotal = outcome.Balance.TuitionTotal
		resp.Paid = outcome.Balance.Paid
		resp.Balance = outcome.Balance.Balance
	}
	if errors.Is(err, domain.ErrAmountExceedsBalance) && outcome != nil {
		resp.Message = appErr.Message + " (" + outcome.Balance.Balance.String() + ")"
	}

	RespondJSON(w, appErr.Status, resp)
}
