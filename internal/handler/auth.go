package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusware/tuition-api/internal/auth"
)

type AuthHandler struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         string
	jwtExpiry         time.Duration
}

func NewAuthHandler(adminUsername, adminPasswordHash, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		jwtExpiry:         jwtExpiry,
	}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r tokenRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if req.Username != h.adminUsername {
		RespondAppError(w, ErrInvalidCredentials, nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)); err != nil {
		RespondAppError(w, ErrInvalidCredentials, nil)
		return
	}

	token, err := auth.GenerateToken(req.Username, auth.RoleAdmin, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.jwtExpiry.Seconds()),
	})
}
