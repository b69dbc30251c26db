package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

// Preparer connects to MongoDB and provides the *mongo.Client, plus the
// *mongo.Database when Config.Database is set. The client is disconnected on shutdown.
func Preparer[C ConfigProvider]() prepare.Preparer[C] {
	return prepare.Project("mongo", func(c C) Config { return c.MongoConfig() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		client, err := New(ctx, cfg)
		if err != nil {
			return effect.Empty(), err
		}
		return provide(client, cfg.Database), nil
	})
}

func provide(client *mongo.Client, database string) effect.Effect {
	e := effect.ExtensionOnly(effect.Provide(client))
	if database != "" {
		e = e.WithExtension(effect.Provide(client.Database(database)))
	}
	return e.WithServer(server.WithShutdownHook(client.Disconnect))
}

// Client returns the client provided by the mongo preparer.
func Client(ctx context.Context) (*mongo.Client, bool) {
	return effect.From[*mongo.Client](ctx)
}

// Database returns the database provided by the mongo preparer.
func Database(ctx context.Context) (*mongo.Database, bool) {
	return effect.From[*mongo.Database](ctx)
}

// Check is a readiness check using the client provided by the mongo preparer.
func Check(ctx context.Context) error {
	client, ok := Client(ctx)
	if !ok || client == nil {
		return ErrNoClient
	}
	return Healthcheck(client)(ctx)
}
