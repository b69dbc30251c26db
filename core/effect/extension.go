package effect

import (
	"context"
	"net/http"
)

// Extension carries shared state that request handlers can retrieve from the request context.
type Extension interface {
	Inject(ctx context.Context) context.Context
}

// ExtensionFunc adapts a plain function to Extension.
type ExtensionFunc func(ctx context.Context) context.Context

// Inject calls f(ctx).
func (f ExtensionFunc) Inject(ctx context.Context) context.Context {
	return f(ctx)
}

// extensionKey is keyed by the value type, so each type gets its own slot.
type extensionKey[T any] struct{}

type valueExtension[T any] struct {
	value T
}

func (v valueExtension[T]) Inject(ctx context.Context) context.Context {
	return context.WithValue(ctx, extensionKey[T]{}, v.value)
}

// Provide returns an extension exposing value to handlers through From[T].
// A later extension of the same type shadows an earlier one.
func Provide[T any](value T) Extension {
	return valueExtension[T]{value: value}
}

// From returns the extension value of type T stored in ctx.
func From[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(extensionKey[T]{}).(T)
	return v, ok
}

// MustFrom is like From but panics when no value of type T was provided.
func MustFrom[T any](ctx context.Context) T {
	v, ok := From[T](ctx)
	if !ok {
		panic(&MissingExtensionError{Type: typeName[T]()})
	}
	return v
}

// Layer wraps next so that every request context carries the given extensions,
// injected in order.
func Layer(next http.Handler, extensions ...Extension) http.Handler {
	if len(extensions) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(InjectAll(r.Context(), extensions...)))
	})
}

// InjectAll applies extensions to ctx in order. Useful outside HTTP handlers,
// for example in background workers started after launch.
func InjectAll(ctx context.Context, extensions ...Extension) context.Context {
	for _, ext := range extensions {
		ctx = ext.Inject(ctx)
	}
	return ctx
}
