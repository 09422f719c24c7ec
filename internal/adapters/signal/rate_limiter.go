package signal

import (
	"github.com/dkeye/relay/internal/config"
	"golang.org/x/time/rate"
)

// FrameRateLimiter throttles inbound frames of one connection.
// A nil limiter allows everything.
type FrameRateLimiter struct {
	l *rate.Limiter
}

func NewFrameRateLimiter(cfg config.RateConfig) *FrameRateLimiter {
	if cfg.Limit <= 0 {
		return nil
	}
	return &FrameRateLimiter{l: rate.NewLimiter(rate.Limit(cfg.Limit), cfg.Burst)}
}

func (fl *FrameRateLimiter) Allow() bool {
	if fl == nil {
		return true
	}
	return fl.l.Allow()
}
