package pg

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

// Preparer connects to PostgreSQL, optionally applies migrations, provides the
// *pgxpool.Pool as an extension and closes it on shutdown.
func Preparer[C ConfigProvider](log ...*slog.Logger) prepare.Preparer[C] {
	var l *slog.Logger
	if len(log) > 0 {
		l = log[0]
	}
	return prepare.Project("postgres", func(c C) Config { return c.PostgresConfig() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		return prepareWith(ctx, cfg, l)
	})
}

func prepareWith(ctx context.Context, cfg Config, log *slog.Logger) (effect.Effect, error) {
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return effect.Empty(), err
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return effect.Empty(), err
		}
	}

	return provide(pool), nil
}

func provide(pool *pgxpool.Pool) effect.Effect {
	return effect.ExtensionOnly(effect.Provide(pool)).
		WithServer(server.WithShutdownHook(func(context.Context) error {
			pool.Close()
			return nil
		}))
}
