package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ProbeResult is the outcome of a profile-appropriate reachability check.
// Probe failures are reported in status payloads, never thrown to
// interrupt callers.
type ProbeResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Prober issues connectivity probes against backend profiles. Outbound
// calls run behind a circuit breaker so a dead endpoint stops consuming
// the probe timeout on every status request.
type Prober struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *zap.Logger
}

// NewProber creates a prober with a bounded per-probe timeout.
func NewProber(timeout time.Duration, logger *zap.Logger) *Prober {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "connectivity-probe",
		MaxRequests: 2,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 3 && counts.TotalFailures == counts.Requests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("probe circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		timeout: timeout,
		logger:  logger,
	}
}

// TestConnectivity issues a profile-appropriate reachability probe. A
// timeout counts as probe failure, not as an error that crashes the
// caller.
func (p *Prober) TestConnectivity(ctx context.Context, profile Profile) ProbeResult {
	switch prof := profile.(type) {
	case LocalProfile:
		return p.httpProbe(ctx, http.MethodGet, prof.Address+"/health", nil, map[string]string{
			"mode":          string(ModeLocal),
			"document_root": prof.DocumentRoot,
		})

	case CloudProfile:
		headers := map[string]string{}
		if prof.ServiceKey != "" {
			headers["X-Service-Key"] = prof.ServiceKey
		}
		return p.httpProbe(ctx, http.MethodHead, prof.Address, headers, map[string]string{
			"mode":          string(ModeCloud),
			"storage_space": prof.StorageSpace,
		})

	case ProductionProfile:
		// Probing the on-board share from outside the vessel network is
		// not possible; report that honestly instead of guessing.
		return ProbeResult{
			Success: false,
			Message: "production share probing is not implemented outside the production network",
			Details: map[string]string{
				"mode":     string(ModeProduction),
				"endpoint": prof.Endpoint(),
			},
		}

	default:
		return ProbeResult{
			Success: false,
			Message: fmt.Sprintf("no probe available for mode %q", profile.Mode()),
		}
	}
}

func (p *Prober) httpProbe(ctx context.Context, method, url string, headers, details map[string]string) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	_, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("endpoint returned %s", resp.Status)
		}
		return nil, nil
	})
	elapsed := time.Since(start)

	details["endpoint"] = url
	details["elapsed"] = elapsed.String()

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return ProbeResult{
			Success: false,
			Message: "probe suppressed: endpoint has been failing, circuit is open",
			Details: details,
		}
	}
	if err != nil {
		p.logger.Warn("connectivity probe failed",
			zap.String("endpoint", url),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return ProbeResult{
			Success: false,
			Message: fmt.Sprintf("probe failed: %v", err),
			Details: details,
		}
	}

	return ProbeResult{
		Success: true,
		Message: "endpoint reachable",
		Details: details,
	}
}
