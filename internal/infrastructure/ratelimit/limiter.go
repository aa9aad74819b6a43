// Package ratelimit keeps one token bucket per upstream so scraped sites are
// not hit harder than configured, however many searches run at once.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is the default bucket applied to sources without an override.
type Config struct {
	// RequestsPerSecond is the sustained rate; zero or less disables limiting.
	RequestsPerSecond float64

	// Burst is the bucket size.
	Burst int
}

// DefaultConfig returns a polite default for scraped sites.
func DefaultConfig() Config {
	return Config{RequestsPerSecond: 2, Burst: 4}
}

// SourceLimiter hands out a shared limiter per source name.
type SourceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// New creates a SourceLimiter with the given defaults.
func New(cfg Config) *SourceLimiter {
	return &SourceLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// Limiter returns the bucket for source, creating it on first use.
func (s *SourceLimiter) Limiter(source string) *rate.Limiter {
	s.mu.RLock()
	l, ok := s.limiters[source]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.limiters[source]; ok {
		return l
	}
	l = newLimiter(s.defaults)
	s.limiters[source] = l
	return l
}

// SetLimit overrides the bucket for one source.
func (s *SourceLimiter) SetLimit(source string, cfg Config) {
	s.mu.Lock()
	s.limiters[source] = newLimiter(cfg)
	s.mu.Unlock()
}

// Wait blocks until source may issue a request or ctx ends. A wait that
// would outlast ctx's deadline fails immediately.
func (s *SourceLimiter) Wait(ctx context.Context, source string) error {
	return s.Limiter(source).Wait(ctx)
}

func newLimiter(cfg Config) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
