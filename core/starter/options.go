package starter

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/launchpad/core/logger"
	"github.com/dmitrymomot/launchpad/core/server"
)

const tracerName = "github.com/dmitrymomot/launchpad/core/starter"

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	tracer     trace.Tracer
	serverOpts []server.Option
	newRouter  func() chi.Router
}

func defaultOptions() options {
	return options{
		logger:    logger.Discard(),
		tracer:    otel.Tracer(tracerName),
		newRouter: func() chi.Router { return chi.NewRouter() },
	}
}

// Option configures a ServerPrepare.
type Option func(*options)

// WithLogger sets the logger for messages emitted before the configured logger
// exists, such as a logger initialization failure. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer enables Prometheus metrics for preparation steps.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithTracer sets the tracer used for preparation spans.
// Defaults to the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithServerOptions sets base server options. They are applied before any
// server option contributed by a preparer, so preparers can override them.
func WithServerOptions(opts ...server.Option) Option {
	return func(o *options) {
		o.serverOpts = append(o.serverOpts, opts...)
	}
}

// WithRouter sets the factory of the router that receives route mutations.
func WithRouter(newRouter func() chi.Router) Option {
	return func(o *options) {
		if newRouter != nil {
			o.newRouter = newRouter
		}
	}
}
