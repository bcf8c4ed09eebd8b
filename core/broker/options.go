package broker

import (
	"log/slog"
	"time"
)

// Option configures registry behavior.
type Option func(*Registry)

// WithLogger sets the logger for registry operations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMessageTTL sets the delay after which stored messages expire.
func WithMessageTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock overrides the time source used to stamp messages.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}
