package effect

import (
	"slices"

	"github.com/dmitrymomot/launchpad/core/server"
)

// Effect is the contribution of one preparation step, split into four independent facets.
// The zero value is the neutral effect: it contributes nothing and is the identity of Combine.
// Effects are immutable; builder methods return new values.
type Effect struct {
	extensions []Extension
	routes     []RouteEffect
	graceful   Graceful
	server     []server.Option
}

// Empty returns the neutral effect.
func Empty() Effect {
	return Effect{}
}

// ExtensionOnly returns an effect contributing only extensions.
func ExtensionOnly(extensions ...Extension) Effect {
	return Effect{}.WithExtension(extensions...)
}

// RouteOnly returns an effect contributing only route mutations.
func RouteOnly(routes ...RouteEffect) Effect {
	return Effect{}.WithRoute(routes...)
}

// GracefulOnly returns an effect contributing only a shutdown signal.
func GracefulOnly(signal Graceful) Effect {
	return Effect{}.WithGraceful(signal)
}

// ServerOnly returns an effect contributing only server options.
func ServerOnly(opts ...server.Option) Effect {
	return Effect{}.WithServer(opts...)
}

// WithExtension returns a copy of e with extensions appended. Nil extensions are skipped.
func (e Effect) WithExtension(extensions ...Extension) Effect {
	e.extensions = appendWhere(e.extensions, extensions, func(x Extension) bool { return x != nil })
	return e
}

// WithRoute returns a copy of e with route mutations appended. Nil mutations are skipped.
func (e Effect) WithRoute(routes ...RouteEffect) Effect {
	e.routes = appendWhere(e.routes, routes, func(r RouteEffect) bool { return r != nil })
	return e
}

// WithGraceful returns a copy of e carrying signal, unless e already carries one.
// The first registered signal wins.
func (e Effect) WithGraceful(signal Graceful) Effect {
	if e.graceful == nil {
		e.graceful = signal
	}
	return e
}

// WithServer returns a copy of e with server options appended. Nil options are skipped.
func (e Effect) WithServer(opts ...server.Option) Effect {
	e.server = appendWhere(e.server, opts, func(o server.Option) bool { return o != nil })
	return e
}

// Combine returns the effect of applying e and then other.
// Sequence facets are concatenated left-then-right; the graceful facet keeps e's signal
// when present and falls back to other's. Combine is associative and never fails.
func (e Effect) Combine(other Effect) Effect {
	return Effect{
		extensions: concat(e.extensions, other.extensions),
		routes:     concat(e.routes, other.routes),
		graceful:   firstGraceful(e.graceful, other.graceful),
		server:     concat(e.server, other.server),
	}
}

// Combine merges two effects; see Effect.Combine.
func Combine(left, right Effect) Effect {
	return left.Combine(right)
}

// Concat folds effects left to right starting from the neutral effect.
func Concat(effects ...Effect) Effect {
	acc := Empty()
	for _, e := range effects {
		acc = acc.Combine(e)
	}
	return acc
}

// Extensions returns the extension facet in accumulation order.
func (e Effect) Extensions() []Extension {
	return slices.Clone(e.extensions)
}

// Routes returns the route facet in accumulation order.
func (e Effect) Routes() []RouteEffect {
	return slices.Clone(e.routes)
}

// Graceful returns the graceful facet; nil when no step supplied a signal.
func (e Effect) Graceful() Graceful {
	return e.graceful
}

// Server returns the server facet in accumulation order.
func (e Effect) Server() []server.Option {
	return slices.Clone(e.server)
}

// IsEmpty reports whether the effect contributes nothing.
func (e Effect) IsEmpty() bool {
	return len(e.extensions) == 0 && len(e.routes) == 0 && e.graceful == nil && len(e.server) == 0
}

func firstGraceful(left, right Graceful) Graceful {
	if left != nil {
		return left
	}
	return right
}

// concat never aliases its inputs, so effects stay independent after combination.
func concat[T any](left, right []T) []T {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}
	out := make([]T, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}

func appendWhere[T any](dst, src []T, keep func(T) bool) []T {
	out := slices.Clone(dst)
	for _, v := range src {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
