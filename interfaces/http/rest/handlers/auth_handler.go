package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
	"vesseldocs-backend/pkg/observability"
	"vesseldocs-backend/pkg/utils"
)

const maxLoginBodyBytes = 4 << 10

// AuthHandler handles session issuance.
type AuthHandler struct {
	authenticator *auth.Authenticator
	metrics       *observability.Collector
	logger        *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *auth.Authenticator, metrics *observability.Collector, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		metrics:       metrics,
		logger:        logger,
	}
}

// LoginRequest represents the request body for creating a session
type LoginRequest struct {
	Principal string `json:"principal" validate:"required,min=1,max=100"`
	Secret    string `json:"secret" validate:"required"`
}

// LoginResponse represents the issued session
type LoginResponse struct {
	SessionID  string    `json:"session_id"`
	Principal  string    `json:"principal"`
	Role       string    `json:"role"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxLoginBodyBytes); err != nil {
		common.RespondAppError(w, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, errors.NewValidationError(err.Error()))
		return
	}

	session, err := h.authenticator.Authenticate(req.Principal, req.Secret)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.metrics.SessionsIssued.Inc()

	common.RespondJSON(w, http.StatusCreated, LoginResponse{
		SessionID:  session.ID,
		Principal:  session.Principal,
		Role:       string(session.Role),
		IssuedAt:   session.IssuedAt,
		ExpiresAt:  session.ExpiresAt(),
		TTLSeconds: int(session.TTL.Seconds()),
	})
}
