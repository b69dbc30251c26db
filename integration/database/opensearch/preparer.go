package opensearch

import (
	"context"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

// Preparer connects to OpenSearch and provides the *opensearch.Client as an extension.
// The client holds no long-lived resources, so no shutdown hook is registered.
func Preparer[C ConfigProvider]() prepare.Preparer[C] {
	return prepare.Project("opensearch", func(c C) Config { return c.OpenSearchConfig() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		client, err := New(ctx, cfg)
		if err != nil {
			return effect.Empty(), err
		}
		return effect.ExtensionOnly(effect.Provide(client)), nil
	})
}
