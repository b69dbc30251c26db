package starter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

// Configuration is the contract every application configuration fulfils.
type Configuration interface {
	// ServeAddress returns the listen address, e.g. "0.0.0.0:8080".
	ServeAddress() string
	// InitLogger builds the application logger. It is called once, before any preparer.
	InitLogger() (*slog.Logger, error)
}

type step[C any] struct {
	name     string
	preparer prepare.Preparer[C]
}

// ServerPrepare accumulates preparation steps for one application.
// It is not safe for concurrent use while being built.
type ServerPrepare[C Configuration] struct {
	cfg         C
	opts        options
	logger      *slog.Logger
	steps       []step[C]
	middlewares []func(http.Handler) http.Handler
	metrics     *stepMetrics
}

// WithConfig starts a pipeline bound to cfg. cfg is shared read-only with every preparer.
func WithConfig[C Configuration](cfg C, opts ...Option) *ServerPrepare[C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ServerPrepare[C]{
		cfg:     cfg,
		opts:    o,
		metrics: newStepMetrics(o.registerer),
	}
}

// InitLogger initializes the logger from the configuration. Calling it is optional:
// PrepareStart does it first when needed. Repeated calls are no-ops once a logger
// exists. A nil logger without an error is reported as ErrNilLogger.
func (sp *ServerPrepare[C]) InitLogger() (*ServerPrepare[C], error) {
	if sp.logger != nil {
		return sp, nil
	}

	l, err := sp.cfg.InitLogger()
	if err != nil {
		return sp, &LoggerInitError{Err: err}
	}
	if l == nil {
		return sp, &LoggerInitError{Err: ErrNilLogger}
	}
	sp.logger = l
	return sp, nil
}

// Logger returns the initialized logger, or the fallback logger before InitLogger.
func (sp *ServerPrepare[C]) Logger() *slog.Logger {
	if sp.logger != nil {
		return sp.logger
	}
	return sp.opts.logger
}

// Append adds p as the next sequential step. Nil preparers are ignored.
func (sp *ServerPrepare[C]) Append(p prepare.Preparer[C]) *ServerPrepare[C] {
	if p != nil {
		sp.steps = append(sp.steps, step[C]{name: prepare.NameOf(p), preparer: p})
	}
	return sp
}

// AppendFunc adds fn as the next sequential step.
func (sp *ServerPrepare[C]) AppendFunc(name string, fn func(ctx context.Context, cfg C) (effect.Effect, error)) *ServerPrepare[C] {
	return sp.Append(prepare.Func(name, fn))
}

// AppendConcurrent adds a concurrent set as the next sequential step. build receives
// an empty set and returns it after joining members.
func (sp *ServerPrepare[C]) AppendConcurrent(build func(*prepare.Set[C]) *prepare.Set[C]) *ServerPrepare[C] {
	if build == nil {
		return sp
	}
	if set := build(prepare.NewSet[C]()); set != nil {
		sp.Append(set)
	}
	return sp
}

// WithGlobalMiddleware adds middlewares installed on the router before any route.
func (sp *ServerPrepare[C]) WithGlobalMiddleware(mw ...func(http.Handler) http.Handler) *ServerPrepare[C] {
	sp.middlewares = append(sp.middlewares, mw...)
	return sp
}

// Len returns the number of sequential steps.
func (sp *ServerPrepare[C]) Len() int {
	return len(sp.steps)
}
