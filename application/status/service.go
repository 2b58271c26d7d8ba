// Package status aggregates connectivity, readiness and diagnostics for
// operators and for the calling workflow layer. Nothing here sits on the
// hot request path.
package status

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/infrastructure/config"
	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/faults"
)

// ServiceStatus is the coarse health state reported to callers.
type ServiceStatus string

const (
	StatusOnline  ServiceStatus = "online"
	StatusOffline ServiceStatus = "offline"
)

// ReasonNetworkUnreachable is reported while a simulated outage is active.
const ReasonNetworkUnreachable = "NETWORK_UNREACHABLE"

// HealthReport is the machine-readable health payload.
type HealthReport struct {
	Status             ServiceStatus `json:"status"`
	Reason             string        `json:"reason,omitempty"`
	OutageUntil        *time.Time    `json:"outage_until,omitempty"`
	UptimeSeconds      float64       `json:"uptime_seconds"`
	DocumentCount      int           `json:"document_count"`
	ActiveSessionCount int           `json:"active_session_count"`
}

// StatusReport is the diagnostic payload for operator and test consumption.
type StatusReport struct {
	Mode            string             `json:"mode"`
	Profile         string             `json:"profile"`
	Endpoint        string             `json:"endpoint"`
	Connectivity    config.ProbeResult `json:"connectivity"`
	Recommendations []string           `json:"recommendations"`
}

// Reporter aggregates the resolver, the index, the session store and the
// outage gate into health and status payloads.
type Reporter struct {
	resolver *config.Resolver
	prober   *config.Prober
	index    *docs.Index
	sessions auth.SessionStore
	gate     faults.OutageGate
	started  time.Time
	logger   *zap.Logger
}

// NewReporter creates a reporter. Uptime counts from construction.
func NewReporter(
	resolver *config.Resolver,
	prober *config.Prober,
	index *docs.Index,
	sessions auth.SessionStore,
	gate faults.OutageGate,
	logger *zap.Logger,
) *Reporter {
	return &Reporter{
		resolver: resolver,
		prober:   prober,
		index:    index,
		sessions: sessions,
		gate:     gate,
		started:  time.Now(),
		logger:   logger,
	}
}

// Health reports readiness. During an active outage window the backend
// reports itself offline with a network-unreachable reason instead of
// attempting any real work.
func (r *Reporter) Health() HealthReport {
	report := HealthReport{
		Status:             StatusOnline,
		UptimeSeconds:      time.Since(r.started).Seconds(),
		DocumentCount:      r.index.Len(),
		ActiveSessionCount: r.sessions.ActiveCount(),
	}

	if active, until := r.gate.Check(); active {
		report.Status = StatusOffline
		report.Reason = ReasonNetworkUnreachable
		report.OutageUntil = &until
	}

	return report
}

// Status aggregates the current profile, a connectivity probe and static
// recommendations into one diagnostic payload.
func (r *Reporter) Status(ctx context.Context) StatusReport {
	profile := r.resolver.Current()

	probe := r.prober.TestConnectivity(ctx, profile)
	if !probe.Success {
		r.logger.Warn("status probe reported failure",
			zap.String("mode", string(profile.Mode())),
			zap.String("message", probe.Message),
		)
	}

	return StatusReport{
		Mode:            string(profile.Mode()),
		Profile:         profile.Describe(),
		Endpoint:        profile.Endpoint(),
		Connectivity:    probe,
		Recommendations: config.Recommendations(profile),
	}
}
