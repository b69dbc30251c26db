// Package starter runs the preparation pipeline of an application and launches
// the resulting server.
//
// A pipeline is bound to one configuration value, receives steps in order and
// runs nothing until PrepareStart:
//
//	ready, err := starter.WithConfig(cfg, starter.WithRegisterer(prometheus.DefaultRegisterer)).
//		Append(health.Preparer[*AppConfig](nil)).
//		AppendConcurrent(func(s *prepare.Set[*AppConfig]) *prepare.Set[*AppConfig] {
//			return s.Join(pg.Preparer[*AppConfig]()).Join(redis.Preparer[*AppConfig]())
//		}).
//		Append(prepare.Infallible("api", apiRoutes)).
//		PrepareStart(ctx)
//	if err != nil {
//		return err
//	}
//	return ready.Launch(ctx)
//
// # Phases
//
// PrepareStart first calls the configuration's InitLogger. A failure there is a
// *LoggerInitError and no preparer runs. Steps then run one after another; the
// first failure stops the pipeline with a *prepare.PrepareError naming the step.
//
// Start applies the combined effect: base server options, then server options
// from the steps, then global middlewares and routes on a chi router, then the
// extensions around the router. The first graceful signal becomes the server's
// shutdown trigger. The listener is bound before Start returns; a bind failure
// is a *LaunchError.
//
// # Observability
//
// Every run gets a UUID that tags its log records. Each step is traced as an
// OpenTelemetry span, and with WithRegisterer its duration and failures are
// exported as launchpad_prepare_* Prometheus metrics.
package starter
