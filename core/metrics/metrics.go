// Package metrics exposes a Prometheus registry over HTTP as a preparation step.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

// DefaultPath is the scrape endpoint used when none is given.
const DefaultPath = "/metrics"

// Handler returns the scrape handler for g, or for the default gatherer when g is nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Preparer serves g on path (DefaultPath when empty).
func Preparer[C any](path string, g prometheus.Gatherer) prepare.Preparer[C] {
	if path == "" {
		path = DefaultPath
	}
	return prepare.Infallible("metrics", func(context.Context, C) effect.Effect {
		return effect.RouteOnly(effect.Route(http.MethodGet, path, Handler(g)))
	})
}
