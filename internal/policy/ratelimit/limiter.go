// Package ratelimit implements a token bucket rate limiter keyed by client.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// DefaultMaxClients bounds the number of tracked buckets when Config.MaxClients is unset.
const DefaultMaxClients = 10000

// Limiter manages per-client rate limits.
type Limiter struct {
	mu           sync.Mutex
	limiters     map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
	maxClients   int
}

// Config holds rate limiter configuration.
type Config struct {
	DefaultRPS   float64
	DefaultBurst int
	// MaxClients caps tracked clients; defaults to DefaultMaxClients.
	MaxClients int
}

// New creates a new Limiter. A non-positive rate disables limiting.
func New(cfg Config) *Limiter {
	r := rate.Limit(cfg.DefaultRPS)
	if cfg.DefaultRPS <= 0 {
		r = rate.Inf
	}
	burst := cfg.DefaultBurst
	if burst <= 0 {
		burst = 1
	}
	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  r,
		defaultBurst: burst,
		maxClients:   maxClients,
	}
}

// Allow reports whether client may make a request now, consuming a token
// if so. A new client is refused while the table is full of clients that
// still have spent tokens.
func (l *Limiter) Allow(client string) bool {
	if client == "" {
		client = "unknown"
	}
	l.mu.Lock()
	limiter, exists := l.limiters[client]
	if !exists {
		if len(l.limiters) >= l.maxClients {
			l.evictIdleLocked()
		}
		if len(l.limiters) >= l.maxClients {
			l.mu.Unlock()
			return false
		}
		limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
		l.limiters[client] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// evictIdleLocked drops buckets that have refilled completely. Such a
// bucket is indistinguishable from a new one, so dropping it loses no state.
func (l *Limiter) evictIdleLocked() {
	full := float64(l.defaultBurst)
	for client, limiter := range l.limiters {
		if limiter.Tokens() >= full {
			delete(l.limiters, client)
		}
	}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Unlimited reports whether the limiter admits everything.
func (l *Limiter) Unlimited() bool {
	return l.defaultRate == rate.Inf
}
