package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/campusware/tuition-api/internal/domain"
	"github.com/campusware/tuition-api/internal/logging"
	"github.com/campusware/tuition-api/internal/repository"
	"github.com/campusware/tuition-api/internal/service"
)

const maxCSVUploadBytes = 10 << 20

type chargeIntake interface {
	AddCharge(ctx context.Context, studentNo, term string, amount domain.Money) (*domain.Charge, error)
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

type unpaidReporter interface {
	UnpaidStudents(ctx context.Context, term string, page, pageSize int) (*service.UnpaidPage, error)
}

type AdminHandler struct {
	charges chargeIntake
	tuition unpaidReporter
}

func NewAdminHandler(charges chargeIntake, tuition unpaidReporter) *AdminHandler {
	return &AdminHandler{charges: charges, tuition: tuition}
}

type addChargeRequest struct {
	StudentNo string       `json:"studentNo"`
	Term      string       `json:"term"`
	Amount    domain.Money `json:"amount"`
}

func (r addChargeRequest) Validate() []FieldError {
	var errs []FieldError
	if r.StudentNo == "" {
		errs = append(errs, FieldError{Field: "studentNo", Message: "required"})
	}
	if r.Term == "" {
		errs = append(errs, FieldError{Field: "term", Message: "required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	return errs
}

type chargeDTO struct {
	ID        uuid.UUID    `json:"id"`
	StudentNo string       `json:"studentNo"`
	Term      string       `json:"term"`
	Amount    domain.Money `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}

func (h *AdminHandler) AddCharge(w http.ResponseWriter, r *http.Request) {
	var req addChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	charge, err := h.charges.AddCharge(r.Context(), req.StudentNo, req.Term, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to add charge", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, chargeDTO{
		ID:        charge.ID,
		StudentNo: req.StudentNo,
		Term:      charge.Term,
		Amount:    charge.Amount,
		CreatedAt: charge.CreatedAt,
	})
}

func (h *AdminHandler) BatchUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "file", Message: "CSV file is required"}})
		return
	}
	defer file.Close()

	imported, err := h.charges.ImportCSV(r.Context(), file)
	if err != nil {
		logging.FromContext(r.Context()).Error("batch upload failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{"imported": imported})
}

type unpaidStudentDTO struct {
	StudentNo    string       `json:"studentNo"`
	FullName     *string      `json:"fullName"`
	Term         string       `json:"term"`
	TuitionTotal domain.Money `json:"tuitionTotal"`
	Paid         domain.Money `json:"paid"`
	Balance      domain.Money `json:"balance"`
}

type unpaidPageDTO struct {
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalCount int                `json:"totalCount"`
	TotalPages int                `json:"totalPages"`
	Items      []unpaidStudentDTO `json:"items"`
}

func (h *AdminHandler) Unpaid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := h.tuition.UnpaidStudents(r.Context(), q.Get("term"), page, pageSize)
	if err != nil {
		logging.FromContext(r.Context()).Error("unpaid report failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	items := make([]unpaidStudentDTO, len(result.Items))
	for i, u := range result.Items {
		items[i] = toUnpaidStudentDTO(u)
	}

	RespondSuccess(w, http.StatusOK, unpaidPageDTO{
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Items:      items,
	})
}

func toUnpaidStudentDTO(u repository.UnpaidStudent) unpaidStudentDTO {
	return unpaidStudentDTO{
		StudentNo:    u.StudentNo,
		FullName:     u.FullName,
		Term:         u.Term,
		TuitionTotal: u.TuitionTotal,
		Paid:         u.Paid,
		Balance:      u.Balance,
	}
}
