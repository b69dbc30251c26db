package s3

import (
	"context"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

// Preparer builds the S3 client, checks the bucket and provides the *Bucket as an extension.
func Preparer[C ConfigProvider](opts ...Option) prepare.Preparer[C] {
	return prepare.Project("s3", func(c C) Config { return c.S3Config() }, func(ctx context.Context, cfg Config) (effect.Effect, error) {
		b, err := New(ctx, cfg, opts...)
		if err != nil {
			return effect.Empty(), err
		}
		return effect.ExtensionOnly(effect.Provide(b)), nil
	})
}
