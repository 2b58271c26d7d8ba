package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/infrastructure/config"
	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
	"vesseldocs-backend/pkg/utils"
)

const maxAdminBodyBytes = 4 << 10

// AdminHandler exposes the operator controls: triggering simulated outage
// windows and repointing the backend at a different profile at runtime.
type AdminHandler struct {
	gate     faults.OutageGate
	resolver *config.Resolver
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(gate faults.OutageGate, resolver *config.Resolver, metrics *observability.Collector, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		gate:     gate,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// TriggerOutageRequest represents the request body for starting an outage
type TriggerOutageRequest struct {
	DurationMs int `json:"duration_ms" validate:"required,gt=0,lte=3600000"`
}

// TriggerOutageResponse reports the resulting outage window
type TriggerOutageResponse struct {
	Active bool      `json:"active"`
	Until  time.Time `json:"until"`
}

// TriggerOutage handles POST /api/v1/admin/outage
func (h *AdminHandler) TriggerOutage(w http.ResponseWriter, r *http.Request) {
	var req TriggerOutageRequest
	if err := common.ParseJSONBody(r, &req, maxAdminBodyBytes); err != nil {
		common.RespondAppError(w, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, errors.NewValidationError(err.Error()))
		return
	}

	until := h.gate.Trigger(time.Duration(req.DurationMs) * time.Millisecond)
	h.metrics.OutagesTriggered.Inc()

	h.logger.Warn("simulated outage triggered",
		zap.Int("duration_ms", req.DurationMs),
		zap.Time("until", until),
	)

	common.RespondJSON(w, http.StatusOK, TriggerOutageResponse{
		Active: true,
		Until:  until,
	})
}

// SwitchModeRequest represents the request body for a runtime mode switch
type SwitchModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=local cloud production"`
}

// SwitchModeResponse reports the newly active profile
type SwitchModeResponse struct {
	Mode     string `json:"mode"`
	Profile  string `json:"profile"`
	Endpoint string `json:"endpoint"`
}

// SwitchMode handles POST /api/v1/admin/mode
func (h *AdminHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	var req SwitchModeRequest
	if err := common.ParseJSONBody(r, &req, maxAdminBodyBytes); err != nil {
		common.RespondAppError(w, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, errors.NewValidationError(err.Error()))
		return
	}

	profile, err := h.resolver.SwitchMode(req.Mode)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("backend mode switched",
		zap.String("mode", string(profile.Mode())),
	)

	common.RespondJSON(w, http.StatusOK, SwitchModeResponse{
		Mode:     string(profile.Mode()),
		Profile:  profile.Describe(),
		Endpoint: profile.Endpoint(),
	})
}
