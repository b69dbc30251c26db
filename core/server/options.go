package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS configures TLS settings for HTTPS.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tlsConfig = config
	}
}

// WithLogger sets a custom logger for server operations.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger = logger
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets the maximum amount of time to wait for the next request.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes sets the maximum size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.maxHeaderBytes = n
	}
}

// WithHTTP1Only disables HTTP/2 negotiation.
func WithHTTP1Only() Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.http1Only = true
	}
}

// WithShutdownSignal registers a channel whose closing triggers graceful shutdown.
// Only one signal is kept; the last option applied wins.
func WithShutdownSignal(signal <-chan struct{}) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.signal = signal
	}
}

// WithShutdownHook registers a function to run during Stop.
// Hooks run in reverse registration order, so resources opened last are released first.
func WithShutdownHook(hook Hook) Option {
	return func(s *Server) {
		if hook == nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.hooks = append(s.hooks, hook)
	}
}
