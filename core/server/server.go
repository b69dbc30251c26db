package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server wraps http.Server with graceful shutdown and configuration options.
// Safe for concurrent use.
type Server struct {
	mu             sync.RWMutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	http1Only      bool
	signal         <-chan struct{}
	hooks          []Hook
	hooksDone      bool
	running        bool
	stopped        bool
}

// Hook is called once during shutdown, after the server stopped accepting connections.
type Hook func(ctx context.Context) error

// New creates a new Server with the given address and options.
// Defaults to 30-second graceful shutdown timeout and a no-op logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Bind opens the listener without serving requests.
// Calling Bind on an already bound server is a no-op.
// Returns ErrServerStopped once Stop has been called.
func (s *Server) Bind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrServerStopped
	}
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrBind, s.addr, err)
	}
	s.listener = ln

	return nil
}

// Addr returns the bound listener address or nil if the server is not bound.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start starts the server and blocks until the context is canceled, the shutdown
// signal fires or an error occurs.
// Returns context.Err() when the context is canceled; nil after a shutdown signal
// or an external Stop. A server that was stopped cannot be started again:
// Start returns ErrServerStopped.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	if err := s.Bind(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.stopped {
		// Stop won the race against Bind and already released the listener.
		s.mu.Unlock()
		return ErrServerStopped
	}
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.running = true

	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
	if s.http1Only {
		// A non-nil empty map disables HTTP/2 negotiation over TLS.
		s.server.TLSNextProto = map[string]func(*http.Server, *tls.Conn, http.Handler){}
	}

	srv := s.server
	ln := s.listener
	hasTLS := s.tlsConfig != nil
	signal := s.signal
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", "addr", ln.Addr().String(), "tls", hasTLS)

		var err error
		if hasTLS {
			err = srv.ServeTLS(ln, "", "")
		} else {
			err = srv.Serve(ln)
		}

		errCh <- err
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			// stopped from outside through Stop
			return nil
		}
		s.mu.Lock()
		s.running = false
		s.listener = nil
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		if err := s.Stop(); err != nil {
			s.logger.Error("failed to stop server after context cancellation", "error", err)
		}
		return ctx.Err()
	case <-signal:
		s.logger.InfoContext(ctx, "shutdown signal received")
		return s.Stop()
	}
}

// Stop gracefully shuts down the server using the configured timeout and then
// runs shutdown hooks in reverse registration order.
// Hooks run once, even if the server never started.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	var errs []error

	if s.running && s.server != nil {
		s.logger.Info("shutting down server gracefully", "timeout", s.shutdown)

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
			errs = append(errs, err)
		}
		s.running = false
		s.listener = nil
	} else if s.listener != nil {
		// Bound but never served.
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
		s.listener = nil
	}

	if !s.hooksDone {
		s.hooksDone = true
		for i := len(s.hooks) - 1; i >= 0; i-- {
			if err := s.hooks[i](shutdownCtx); err != nil {
				s.logger.Error("shutdown hook failed", "error", err)
				errs = append(errs, fmt.Errorf("%w: %w", ErrShutdownHook, err))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// Returns a function that starts the server, monitors context cancellation,
// and performs graceful shutdown when the context is cancelled.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			if stopErr := s.Stop(); stopErr != nil {
				s.logger.Error("failed to stop server during context cancellation", "error", stopErr)
			}
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Run is a convenience function that creates and runs a server with default settings.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	server := New(addr)
	return server.Run(ctx, handler)()
}
