package resilience

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("resilience: circuit open")

type CircuitState string

const (
	CircuitClosed   CircuitState = "closed"
	CircuitOpen     CircuitState = "open"
	CircuitHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards an upstream dependency. After enough consecutive
// failures the circuit opens and calls are rejected until the reopen
// deadline passes, at which point a bounded number of probes is let
// through before the circuit closes again.
type CircuitBreaker struct {
	mu sync.Mutex

	maxFailures int
	cooldown    time.Duration
	maxProbes   int

	state        CircuitState
	failures     int
	reopenAt     time.Time
	probesActive int
	probesPassed int
	clock        func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)

	return &CircuitBreaker{
		maxFailures: cfg.FailureThreshold,
		cooldown:    cfg.OpenTimeout,
		maxProbes:   cfg.HalfOpenMaxReq,
		state:       CircuitClosed,
		clock:       time.Now,
	}
}

// Allow reports whether a call may proceed, returning ErrCircuitOpen when
// the breaker is rejecting traffic. An allowed call must be followed by
// exactly one RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen {
		if b.clock().Before(b.reopenAt) {
			return ErrCircuitOpen
		}
		b.state = CircuitHalfOpen
		b.probesActive = 0
		b.probesPassed = 0
	}

	if b.state == CircuitHalfOpen {
		if b.probesActive >= b.maxProbes {
			return ErrCircuitOpen
		}
		b.probesActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures = 0
	case CircuitHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.probesPassed++
		if b.probesPassed >= b.maxProbes && b.probesActive == 0 {
			b.state = CircuitClosed
			b.failures = 0
			b.reopenAt = time.Time{}
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			b.trip()
		}
	case CircuitHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.trip()
	case CircuitOpen:
		b.reopenAt = b.clock().Add(b.cooldown)
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen && !b.clock().Before(b.reopenAt) {
		return CircuitHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitOpen
	b.reopenAt = b.clock().Add(b.cooldown)
	b.probesActive = 0
	b.probesPassed = 0
}
