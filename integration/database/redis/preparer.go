package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

// Preparer connects to Redis, provides the redis.UniversalClient as an extension
// and closes it on shutdown.
func Preparer[C ConfigProvider]() prepare.Preparer[C] {
	return prepare.Project("redis", func(c C) Config { return c.RedisConfig() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		client, err := Connect(ctx, cfg)
		if err != nil {
			return effect.Empty(), err
		}
		return provide(client), nil
	})
}

func provide(client redis.UniversalClient) effect.Effect {
	return effect.ExtensionOnly(effect.Provide(client)).
		WithServer(server.WithShutdownHook(func(context.Context) error {
			return client.Close()
		}))
}
