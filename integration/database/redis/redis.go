package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/launchpad/core/effect"
)

// Config holds Redis connection settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConfigProvider is implemented by application configurations that carry Redis settings.
type ConfigProvider interface {
	RedisConfig() Config
}

// Connect creates a client and waits until it answers PING, retrying with
// exponential backoff within ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	opts, err := parseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)

	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}
	attempts := max(cfg.RetryAttempts, 1)

	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(interval))
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return client, nil
}

func parseURL(raw string) (*redis.Options, error) {
	if raw == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(raw, "redis://") && !strings.HasPrefix(raw, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme in %q", ErrFailedToParseRedisConnString, raw)
	}
	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}
	return opts, nil
}

// Healthcheck returns a readiness check pinging client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Client returns the client provided by the redis preparer.
func Client(ctx context.Context) (redis.UniversalClient, bool) {
	return effect.From[redis.UniversalClient](ctx)
}

// Check is a readiness check using the client provided by the redis preparer.
func Check(ctx context.Context) error {
	client, ok := Client(ctx)
	if !ok || client == nil {
		return ErrNoClient
	}
	return Healthcheck(client)(ctx)
}
