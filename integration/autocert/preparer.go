package autocert

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

// Preparer builds the certificate manager, switches the application server to
// TLS, provides the *autocert.Manager as an extension and, when HTTPAddr is set,
// binds a plain HTTP listener for http-01 challenges that is closed on shutdown.
func Preparer[C ConfigProvider](opts ...Option) prepare.Preparer[C] {
	return prepare.Project("autocert", func(c C) Config { return c.AutocertConfig() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		return prepareWith(ctx, cfg, buildOptions(opts))
	})
}

func prepareWith(ctx context.Context, cfg Config, o options) (effect.Effect, error) {
	if err := cfg.Validate(); err != nil {
		return effect.Empty(), err
	}
	m := newManager(cfg, o)

	if cfg.Warm {
		if err := Warm(ctx, m, cfg, o.logger); err != nil {
			return effect.Empty(), err
		}
	}

	eff := effect.ExtensionOnly(effect.Provide(m)).WithServer(server.WithTLS(TLSConfig(m)))
	if cfg.HTTPAddr == "" {
		return eff, nil
	}

	stop, err := serveChallenges(ctx, cfg.HTTPAddr, m, o.logger)
	if err != nil {
		return effect.Empty(), err
	}
	return eff.WithServer(server.WithShutdownHook(stop)), nil
}

// serveChallenges answers http-01 challenges on addr and redirects every other
// request to HTTPS. The listener is bound before returning.
func serveChallenges(ctx context.Context, addr string, m *autocert.Manager, log *slog.Logger) (func(context.Context) error, error) {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Join(ErrChallengeListener, err)
	}

	srv := &http.Server{
		Handler:           m.HTTPHandler(nil),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("serving acme challenges", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("challenge server stopped", "error", err)
		}
	}()

	return srv.Shutdown, nil
}
