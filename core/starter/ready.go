package starter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/logger"
	"github.com/dmitrymomot/launchpad/core/server"
)

// Ready is a fully prepared application that has not been bound yet.
type Ready[C Configuration] struct {
	cfg         C
	effect      effect.Effect
	logger      *slog.Logger
	runID       string
	opts        options
	middlewares []func(http.Handler) http.Handler
}

// Effect returns the combined effect of every step.
func (r *Ready[C]) Effect() effect.Effect {
	return r.effect
}

// Config returns the configuration the application was prepared with.
func (r *Ready[C]) Config() C {
	return r.cfg
}

// Logger returns the application logger.
func (r *Ready[C]) Logger() *slog.Logger {
	return r.logger
}

// Router builds a fresh router with the global middlewares and every route
// mutation applied in accumulation order. Extensions are not applied.
func (r *Ready[C]) Router() chi.Router {
	router := r.opts.newRouter()
	if len(r.middlewares) > 0 {
		router.Use(r.middlewares...)
	}
	for _, re := range r.effect.Routes() {
		re.SetRoute(router)
	}
	return router
}

// Handler builds the request handler: the Router wrapped by the extensions in
// accumulation order. Each call builds a fresh router.
func (r *Ready[C]) Handler() http.Handler {
	return effect.Layer(r.Router(), r.effect.Extensions()...)
}

// Close releases prepared resources by running the shutdown hooks of the server
// facet without binding. Use it when the application is prepared but not started.
func (r *Ready[C]) Close() error {
	return server.New(r.cfg.ServeAddress(), r.serverOptions()...).Stop()
}

func (r *Ready[C]) serverOptions() []server.Option {
	opts := make([]server.Option, 0, 2+len(r.opts.serverOpts)+len(r.effect.Server()))
	opts = append(opts, server.WithLogger(r.logger))
	opts = append(opts, r.opts.serverOpts...)
	opts = append(opts, r.effect.Server()...)
	return opts
}

// Start applies the effect to a new server, binds its listener and starts serving
// in the background. A bind failure is returned as *LaunchError. The server stops
// when ctx is canceled, the graceful signal fires or Running.Stop is called.
func (r *Ready[C]) Start(ctx context.Context) (*Running, error) {
	addr := r.cfg.ServeAddress()
	log := r.logger.With(logger.Component("starter"), logger.RunID(r.runID))

	opts := r.serverOptions()

	graceful := r.effect.Graceful()
	if graceful != nil {
		opts = append(opts, server.WithShutdownSignal(graceful))
	}

	srv := server.New(addr, opts...)
	handler := r.Handler()

	if err := srv.Bind(); err != nil {
		log.ErrorContext(ctx, "launch failed", logger.Address(addr), logger.Error(err))
		// release shutdown hooks of the prepared resources
		if stopErr := srv.Stop(); stopErr != nil {
			log.ErrorContext(ctx, "cleanup after failed launch", logger.Error(stopErr))
		}
		return nil, &LaunchError{Addr: addr, Err: err}
	}

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(srv.Run(gctx, handler))
	if graceful != nil {
		g.Go(func() error {
			select {
			case <-graceful:
				log.InfoContext(gctx, "graceful shutdown requested")
			case <-gctx.Done():
			}
			return nil
		})
	}

	running := &Running{
		addr:   srv.Addr(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		running.err = g.Wait()
		cancel()
		log.InfoContext(context.WithoutCancel(ctx), "server stopped", logger.Error(running.err))
		close(running.done)
	}()

	log.InfoContext(ctx, "server started", logger.Address(running.addr.String()))
	return running, nil
}

// Launch starts the application and blocks until it stops.
func (r *Ready[C]) Launch(ctx context.Context) error {
	running, err := r.Start(ctx)
	if err != nil {
		return err
	}
	return running.Wait()
}
