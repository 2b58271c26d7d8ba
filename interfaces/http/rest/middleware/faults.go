package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
)

// FaultInjection wraps request paths with the randomized latency window
// and the simulated-outage gate. Composing the policy here keeps it in one
// place: routes that must bypass it (health, metrics, the admin surface
// that manages the gate) are simply mounted outside this middleware, and
// tests disable it by constructing a zero-latency injector.
func FaultInjection(
	injector *faults.Injector,
	gate faults.OutageGate,
	metrics *observability.Collector,
	logger *zap.Logger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Delay first: a request arriving during an outage still pays
			// the latency before being shed, like a real degraded network.
			injector.Inject()

			if active, until := gate.Check(); active {
				metrics.RequestsShedOutage.Inc()
				logger.Info("request shed by outage window",
					zap.String("path", r.URL.Path),
					zap.Time("until", until),
				)
				common.RespondAppError(w, errors.NewUnavailableError("simulated outage in progress").
					WithDetails(map[string]interface{}{"until": until}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
