package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
)

func newFaultHandler(t *testing.T, gate faults.OutageGate) http.Handler {
	t.Helper()

	mw := FaultInjection(
		faults.NewInjector(0), // no latency in tests
		gate,
		observability.NewCollector("test"),
		zap.NewNop(),
	)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestFaultInjection_PassesThroughWhenNoOutage(t *testing.T) {
	handler := newFaultHandler(t, faults.NewOutageGate())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFaultInjection_ShedsDuringOutage(t *testing.T) {
	gate := faults.NewOutageGate()
	gate.Trigger(time.Minute)
	handler := newFaultHandler(t, gate)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "NETWORK_UNREACHABLE")
	assert.Contains(t, rec.Body.String(), "until")
}

func TestFaultInjection_RecoversAfterWindow(t *testing.T) {
	now := time.Now()
	clock := &now
	gate := faults.NewOutageGateWithClock(func() time.Time { return *clock })
	gate.Trigger(50 * time.Millisecond)
	handler := newFaultHandler(t, gate)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	next := now.Add(time.Second)
	clock = &next

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
