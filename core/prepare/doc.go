// Package prepare defines preparers, the startup steps of an application, and the
// concurrent Set used to run several of them at once.
//
// A Preparer receives the shared configuration and returns an effect.Effect:
//
//	type cachePreparer struct{}
//
//	func (cachePreparer) Name() string { return "cache" }
//
//	func (cachePreparer) Prepare(ctx context.Context, cfg *AppConfig) (effect.Effect, error) {
//		c, err := cache.Dial(ctx, cfg.CacheURL)
//		if err != nil {
//			return effect.Empty(), err
//		}
//		return effect.ExtensionOnly(effect.Provide(c)), nil
//	}
//
// Most steps do not need a type of their own; Func, Infallible, Project and Static
// lift plain functions and values.
//
// Integration packages declare the part of the configuration they need as an
// interface and use it as the type constraint:
//
//	func Preparer[C pg.ConfigProvider]() prepare.Preparer[C]
//
// so a configuration type that does not provide it is rejected at compile time.
//
// # Errors
//
// Failures are reported as *PrepareError carrying the step, the set member and the
// preparer name:
//
//	step 3 (postgres, concurrent member 2) failed: dial tcp: connection refused
//
// Panics inside a preparer are recovered and wrapped as ErrPanic.
package prepare
