// Package health provides liveness and readiness HTTP handlers.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/topichat/core/logger"
)

// Liveness indicates the process is running. Always 200 OK, no dependency
// checks.
func Liveness(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ALIVE"))
}

// Readiness verifies the given dependency checks. Returns "READY" when all
// pass, 503 Service Unavailable when any fail.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				http.Error(w, "SERVICE UNAVAILABLE", http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
