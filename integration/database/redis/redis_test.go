package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/integration/database/redis"
)

type appConfig struct {
	redis redis.Config
}

func (c *appConfig) RedisConfig() redis.Config { return c.redis }

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", redis.ErrEmptyConnectionURL},
		{"wrong scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad db", "redis://localhost:6379/notanumber", redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 5 * time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestPreparer(t *testing.T) {
	t.Parallel()

	p := redis.Preparer[*appConfig]()
	assert.Equal(t, "redis", prepare.NameOf(p))

	_, err := p.Prepare(context.Background(), &appConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestCheckWithoutClient(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, redis.Check(context.Background()), redis.ErrNoClient)
}
