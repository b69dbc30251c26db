package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/logger"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

// Check verifies one dependency. The context is the request context, so it
// carries every extension provided during preparation.
type Check func(ctx context.Context) error

// Liveness reports that the process is running. Always "ALIVE" with 200 OK.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ALIVE")
}

// NoContent returns 204 without body. Meant for high-frequency probes.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Readiness runs every check in order and responds "READY", or 503 when one fails.
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Component("health"), logger.Error(err))
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "READY")
	}
}

// Routes returns the route effect serving liveness on path and readiness on path+"/ready".
func Routes(path string, log *slog.Logger, checks ...Check) effect.Effect {
	if path == "" {
		path = DefaultPath
	}
	return effect.RouteOnly(
		effect.Get(path, Liveness),
		effect.Get(path+"/ready", Readiness(log, checks...)),
	)
}

// DefaultPath is the health endpoint used when none is given.
const DefaultPath = "/health"

// Preparer contributes the health routes on DefaultPath. Failed readiness checks
// are logged to log; nil discards them.
func Preparer[C any](log *slog.Logger, checks ...Check) prepare.Preparer[C] {
	return PreparerAt[C](DefaultPath, log, checks...)
}

// PreparerAt is like Preparer with a custom path.
func PreparerAt[C any](path string, log *slog.Logger, checks ...Check) prepare.Preparer[C] {
	return prepare.Infallible("health", func(ctx context.Context, _ C) effect.Effect {
		return Routes(path, log, checks...)
	})
}
