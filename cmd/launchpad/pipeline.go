package main

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/launchpad/core/health"
	"github.com/dmitrymomot/launchpad/core/metrics"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/starter"
	"github.com/dmitrymomot/launchpad/integration/autocert"
	"github.com/dmitrymomot/launchpad/integration/database/mongo"
	"github.com/dmitrymomot/launchpad/integration/database/opensearch"
	"github.com/dmitrymomot/launchpad/integration/database/pg"
	"github.com/dmitrymomot/launchpad/integration/database/redis"
	"github.com/dmitrymomot/launchpad/integration/storage/s3"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newPipeline builds the application steps: enabled integrations as one
// concurrent step, then health and metrics routes.
func newPipeline(cfg *AppConfig, reg *prometheus.Registry) (*starter.ServerPrepare[*AppConfig], error) {
	serverOpts, err := cfg.Server.Options()
	if err != nil {
		return nil, err
	}

	sp := starter.WithConfig(cfg,
		starter.WithRegisterer(reg),
		starter.WithServerOptions(serverOpts...),
	)
	if _, err := sp.InitLogger(); err != nil {
		return nil, err
	}
	log := sp.Logger()

	var checks []health.Check
	if cfg.Enable.Any() {
		sp.AppendConcurrent(func(set *prepare.Set[*AppConfig]) *prepare.Set[*AppConfig] {
			if cfg.Enable.Postgres {
				set.Join(pg.Preparer[*AppConfig](log))
				checks = append(checks, pg.Check)
			}
			if cfg.Enable.Redis {
				set.Join(redis.Preparer[*AppConfig]())
				checks = append(checks, redis.Check)
			}
			if cfg.Enable.Mongo {
				set.Join(mongo.Preparer[*AppConfig]())
				checks = append(checks, mongo.Check)
			}
			if cfg.Enable.OpenSearch {
				set.Join(opensearch.Preparer[*AppConfig]())
				checks = append(checks, opensearch.Check)
			}
			if cfg.Enable.S3 {
				set.Join(s3.Preparer[*AppConfig]())
				checks = append(checks, s3.Check)
			}
			if cfg.Enable.Autocert {
				set.Join(autocert.Preparer[*AppConfig](autocert.WithLogger(log)))
				checks = append(checks, autocert.Check)
			}
			return set
		})
	}

	return sp.
		WithGlobalMiddleware(middleware.RequestID, middleware.RealIP, middleware.Recoverer).
		Append(health.PreparerAt[*AppConfig](cfg.HealthPath, log, checks...)).
		Append(metrics.Preparer[*AppConfig](cfg.MetricsPath, reg)), nil
}
