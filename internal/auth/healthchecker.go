package auth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefit/tracker-backend/internal/health"
)

// VerifierHealthChecker monitors identity-provider reachability with periodic
// probes. A verifier that exposes no HealthPing reads as always healthy.
type VerifierHealthChecker struct {
	verifier     Verifier
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewVerifierHealthChecker(v Verifier, log zerolog.Logger, probeTimeout time.Duration) *VerifierHealthChecker {
	hc := &VerifierHealthChecker{
		verifier:     v,
		log:          log,
		probeTimeout: probeTimeout,
	}
	hc.healthy.Store(0)
	return hc
}

func (hc *VerifierHealthChecker) Name() string { return "identity-provider" }

func (hc *VerifierHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

func (hc *VerifierHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if hc.probe(checkCtx) {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (hc *VerifierHealthChecker) probe(ctx context.Context) bool {
	p, ok := hc.verifier.(health.HealthPinger)
	if !ok {
		return true
	}
	if err := p.HealthPing(ctx); err != nil {
		hc.log.Error().Str("checker", hc.Name()).Err(err).Msg("identity provider health check failed")
		return false
	}
	return true
}
