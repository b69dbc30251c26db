// Package effect defines the unit produced by a preparation step and the rules for
// combining many of them into one.
//
// An Effect has four independent facets:
//
//   - Extensions: shared state injected into every request context (Provide, From, MustFrom)
//   - Routes: router mutations (Route, Get, Post, Handle, Nest, Merge, Fallback, MethodNotAllowed)
//   - Graceful: at most one shutdown signal (OnSignal, OnContext, or any channel)
//   - Server: listener/transport options from the server package
//
// # Building Effects
//
//	e := effect.RouteOnly(effect.Get("/health", healthHandler)).
//		WithExtension(effect.Provide(pool)).
//		WithServer(server.WithShutdownHook(closePool))
//
// The zero Effect contributes nothing and is the neutral element of combination.
//
// # Combination
//
// Combine concatenates the sequence facets left-then-right and keeps the first graceful
// signal, silently dropping later ones:
//
//	all := effect.Concat(dbEffect, cacheEffect, routesEffect)
//
// Combine is associative and Empty is its identity, so any number of effects can be folded
// without special cases. Combination never fails.
//
// # Extensions
//
// Extension values are keyed by their Go type. Handlers read them from the request context:
//
//	func listUsers(w http.ResponseWriter, r *http.Request) {
//		pool := effect.MustFrom[*pgxpool.Pool](r.Context())
//		...
//	}
//
// When two extensions share a type, the one injected later wins.
package effect
