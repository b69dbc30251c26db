package effect

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouteEffect mutates the router during the application phase.
type RouteEffect interface {
	SetRoute(r chi.Router)
}

// RouteFunc adapts a plain function to RouteEffect.
type RouteFunc func(r chi.Router)

// SetRoute calls f(r).
func (f RouteFunc) SetRoute(r chi.Router) {
	f(r)
}

// Route registers handler for a single method and pattern.
func Route(method, pattern string, handler http.Handler) RouteEffect {
	return route{method: method, pattern: pattern, handler: handler}
}

// Get registers handler for GET requests on pattern.
func Get(pattern string, handler http.HandlerFunc) RouteEffect {
	return Route(http.MethodGet, pattern, handler)
}

// Post registers handler for POST requests on pattern.
func Post(pattern string, handler http.HandlerFunc) RouteEffect {
	return Route(http.MethodPost, pattern, handler)
}

// Handle registers handler for all methods on pattern.
func Handle(pattern string, handler http.Handler) RouteEffect {
	return route{pattern: pattern, handler: handler}
}

// Nest mounts handler (usually a sub-router) under prefix.
func Nest(prefix string, handler http.Handler) RouteEffect {
	return nest{prefix: prefix, handler: handler}
}

// Merge copies every route of other into the target router, keeping
// per-route middlewares. Sub-routers mounted on other are flattened.
func Merge(other chi.Routes) RouteEffect {
	return merge{other: other}
}

// Fallback installs the handler used when no route matches.
func Fallback(handler http.HandlerFunc) RouteEffect {
	return fallback{handler: handler}
}

// MethodNotAllowed installs the handler used when the path matches but the method does not.
func MethodNotAllowed(handler http.HandlerFunc) RouteEffect {
	return methodNotAllowed{handler: handler}
}

type route struct {
	method  string
	pattern string
	handler http.Handler
}

func (r route) SetRoute(router chi.Router) {
	if r.method == "" {
		router.Handle(r.pattern, r.handler)
		return
	}
	router.Method(r.method, r.pattern, r.handler)
}

type nest struct {
	prefix  string
	handler http.Handler
}

func (n nest) SetRoute(router chi.Router) {
	router.Mount(n.prefix, n.handler)
}

type merge struct {
	other chi.Routes
}

func (m merge) SetRoute(router chi.Router) {
	_ = chi.Walk(m.other, func(method, pattern string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		router.With(middlewares...).Method(method, pattern, handler)
		return nil
	})
}

type fallback struct {
	handler http.HandlerFunc
}

func (f fallback) SetRoute(router chi.Router) {
	router.NotFound(f.handler)
}

type methodNotAllowed struct {
	handler http.HandlerFunc
}

func (m methodNotAllowed) SetRoute(router chi.Router) {
	router.MethodNotAllowed(m.handler)
}
