// Package health provides liveness and readiness handlers and a preparer that
// registers them.
//
//	starter.WithConfig(cfg).
//		Append(health.Preparer[*AppConfig](log, pg.Check, redis.Check))
//
// serves GET /health (always ALIVE) and GET /health/ready, which runs the checks
// in order and answers 503 on the first failure, logging it to log. Checks receive the request
// context, so they can reach clients provided as extensions by other steps.
package health
