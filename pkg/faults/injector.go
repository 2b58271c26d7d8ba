// Package faults implements deliberate latency injection and simulated
// outage windows. The backend exists partly to exercise caller resilience,
// so every request path is wrapped with a randomized delay and a gate that
// rejects work while an operator-triggered outage is active.
package faults

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultMaxLatency is the default upper bound of the injected delay window.
const DefaultMaxLatency = 500 * time.Millisecond

// OutageGate owns the process-wide outage window. Implementations must be
// safe for concurrent use from many request handlers.
type OutageGate interface {
	// Trigger opens an outage window for the given duration and returns
	// the instant at which it closes.
	Trigger(d time.Duration) time.Time

	// Check reports whether an outage is currently active and, if so,
	// when it ends. The window self-clears lazily: the first Check at or
	// after the deadline resets it.
	Check() (active bool, until time.Time)
}

type outageWindow struct {
	mu     sync.Mutex
	active bool
	until  time.Time
	now    func() time.Time
}

// NewOutageGate creates an inactive outage gate.
func NewOutageGate() OutageGate {
	return &outageWindow{now: time.Now}
}

// NewOutageGateWithClock creates a gate with an injectable clock for tests.
func NewOutageGateWithClock(now func() time.Time) OutageGate {
	return &outageWindow{now: now}
}

func (w *outageWindow) Trigger(d time.Duration) time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = true
	w.until = w.now().Add(d)
	return w.until
}

func (w *outageWindow) Check() (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active {
		return false, time.Time{}
	}
	if !w.now().Before(w.until) {
		// Window elapsed; clear on this read rather than via a timer.
		w.active = false
		w.until = time.Time{}
		return false, time.Time{}
	}
	return true, w.until
}

// Injector draws a per-request delay uniformly from [0, maxLatency]. Each
// request sleeps independently in its own goroutine, so one request's delay
// never blocks another.
type Injector struct {
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewInjector creates a latency injector. A non-positive maxLatency
// disables injection entirely, which keeps tests deterministic.
func NewInjector(maxLatency time.Duration) *Injector {
	return &Injector{
		maxLatency: maxLatency,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Delay returns the next randomized delay without sleeping.
func (in *Injector) Delay() time.Duration {
	if in.maxLatency <= 0 {
		return 0
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return time.Duration(in.rng.Int63n(int64(in.maxLatency) + 1))
}

// Inject sleeps for a randomized delay in [0, maxLatency].
func (in *Injector) Inject() {
	if d := in.Delay(); d > 0 {
		time.Sleep(d)
	}
}

// MaxLatency returns the configured delay window upper bound.
func (in *Injector) MaxLatency() time.Duration {
	return in.maxLatency
}
