package autocert

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/crypto/acme"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/server"
)

const probeKey = "launchpad-healthcheck-probe"

// Option configures the certificate manager.
type Option func(*options)

type options struct {
	cache  autocert.Cache
	client *acme.Client
	logger *slog.Logger
}

// WithCache replaces the directory cache, e.g. with a shared store in multi-instance setups.
func WithCache(cache autocert.Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithClient sets the ACME client. Mostly useful for tests and private CAs.
func WithClient(client *acme.Client) Option {
	return func(o *options) { o.client = client }
}

// WithLogger sets the logger for challenge server and warm-up events.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// NewManager validates cfg and builds an autocert.Manager restricted to the configured domains.
func NewManager(cfg Config, opts ...Option) (*autocert.Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return newManager(cfg, o), nil
}

func newManager(cfg Config, o options) *autocert.Manager {
	cache := o.cache
	if cache == nil {
		cache = autocert.DirCache(cfg.CacheDir)
	}
	client := o.client
	if client == nil && cfg.DirectoryURL != "" {
		client = &acme.Client{DirectoryURL: cfg.DirectoryURL}
	}

	return &autocert.Manager{
		Prompt:      autocert.AcceptTOS,
		Cache:       cache,
		HostPolicy:  HostPolicy(cfg.Domains...),
		RenewBefore: cfg.RenewBefore,
		Client:      client,
		Email:       cfg.Email,
	}
}

// HostPolicy allows only the given hosts. Ports and letter case are ignored.
func HostPolicy(domains ...string) autocert.HostPolicy {
	allowed := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		allowed[normalizeHost(d)] = struct{}{}
	}
	return func(_ context.Context, host string) error {
		if _, ok := allowed[normalizeHost(host)]; !ok {
			return fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
		}
		return nil
	}
}

// TLSConfig returns the server's default TLS settings with certificates served by m.
// The acme-tls/1 protocol is advertised so tls-alpn-01 challenges work on the HTTPS port.
func TLSConfig(m *autocert.Manager) *tls.Config {
	cfg := server.DefaultTLSConfig()
	cfg.GetCertificate = m.GetCertificate
	cfg.NextProtos = []string{"h2", "http/1.1", acme.ALPNProto}
	return cfg
}

// Warm obtains a certificate for every domain, retrying transient ACME failures.
func Warm(ctx context.Context, m *autocert.Manager, cfg Config, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for _, domain := range cfg.Domains {
		start := time.Now()
		err := retry.Do(ctx, backoff(cfg.RetryAttempts, cfg.RetryInterval), func(ctx context.Context) error {
			_, err := m.GetCertificate(&tls.ClientHelloInfo{ServerName: domain})
			if err != nil && isRetryable(err) {
				log.WarnContext(ctx, "certificate request failed, retrying", "domain", domain, "error", err)
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrWarmFailed, domain, err)
		}
		log.InfoContext(ctx, "certificate ready", "domain", domain, "elapsed", time.Since(start))
	}
	return nil
}

func backoff(attempts int, interval time.Duration) retry.Backoff {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(interval))
}

var retryablePatterns = []string{
	"connection refused",
	"network is unreachable",
	"no such host",
	"timeout",
	"rate limit",
	"429",
	"503",
	"temporary failure",
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrHostNotAllowed) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// Healthcheck reports whether the certificate cache is reachable.
// A cache miss counts as healthy.
func Healthcheck(m *autocert.Manager) func(context.Context) error {
	return func(ctx context.Context) error {
		if m.Cache == nil {
			return nil
		}
		if _, err := m.Cache.Get(ctx, probeKey); err != nil && !errors.Is(err, autocert.ErrCacheMiss) {
			return errors.Join(ErrCacheUnavailable, err)
		}
		return nil
	}
}

// Manager returns the certificate manager provided by Preparer.
func Manager(ctx context.Context) (*autocert.Manager, error) {
	m, ok := effect.From[*autocert.Manager](ctx)
	if !ok {
		return nil, ErrNoManager
	}
	return m, nil
}

// Check is a readiness check backed by the manager in ctx.
func Check(ctx context.Context) error {
	m, err := Manager(ctx)
	if err != nil {
		return err
	}
	return Healthcheck(m)(ctx)
}
