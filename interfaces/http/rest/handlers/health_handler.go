package handlers

import (
	"net/http"

	"vesseldocs-backend/application/status"
	"vesseldocs-backend/pkg/common"
)

// HealthHandler serves the readiness and diagnostic endpoints.
type HealthHandler struct {
	reporter *status.Reporter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reporter *status.Reporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// Health handles GET /health. It reports offline with 503 during an active
// outage window so probes see the same picture as API callers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.reporter.Health()

	code := http.StatusOK
	if report.Status == status.StatusOffline {
		code = http.StatusServiceUnavailable
	}
	common.RespondJSON(w, code, report)
}

// Status handles GET /status
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.reporter.Status(r.Context()))
}
