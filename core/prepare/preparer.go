package prepare

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dmitrymomot/launchpad/core/effect"
)

// Preparer is one startup step. It reads the shared configuration and returns the
// effect it contributes. cfg is shared between concurrently running preparers and
// must be treated as read-only.
//
// An effect returned together with an error is discarded, except for the shutdown
// hooks of its server facet: they run so partially acquired resources are released.
type Preparer[C any] interface {
	Prepare(ctx context.Context, cfg C) (effect.Effect, error)
}

// Named is implemented by preparers that want a readable identity in errors and logs.
type Named interface {
	Name() string
}

// NameOf returns the identity of p: its Name when it implements Named,
// otherwise its dynamic type.
func NameOf(p any) string {
	if n, ok := p.(Named); ok {
		if name := n.Name(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", p)
}

type funcPreparer[C any] struct {
	name string
	fn   func(context.Context, C) (effect.Effect, error)
}

func (f funcPreparer[C]) Prepare(ctx context.Context, cfg C) (effect.Effect, error) {
	return f.fn(ctx, cfg)
}

func (f funcPreparer[C]) Name() string { return f.name }

// Func lifts a fallible function into a named Preparer.
func Func[C any](name string, fn func(ctx context.Context, cfg C) (effect.Effect, error)) Preparer[C] {
	return funcPreparer[C]{name: name, fn: fn}
}

// Infallible lifts a function that cannot fail.
func Infallible[C any](name string, fn func(ctx context.Context, cfg C) effect.Effect) Preparer[C] {
	return Func(name, func(ctx context.Context, cfg C) (effect.Effect, error) {
		return fn(ctx, cfg), nil
	})
}

// Project lifts a function that only needs a narrow view V of the configuration.
// project extracts the view; fn never sees the full configuration.
func Project[C, V any](name string, project func(C) V, fn func(ctx context.Context, view V) (effect.Effect, error)) Preparer[C] {
	return Func(name, func(ctx context.Context, cfg C) (effect.Effect, error) {
		return fn(ctx, project(cfg))
	})
}

// Static returns a preparer that always contributes e.
func Static[C any](name string, e effect.Effect) Preparer[C] {
	return Func(name, func(context.Context, C) (effect.Effect, error) {
		return e, nil
	})
}

// Run invokes p and attributes any failure to it. Panics are recovered and
// reported as a PrepareError wrapping ErrPanic. A PrepareError returned by p
// itself (from a nested set) is passed through unchanged. On failure the effect
// returned by p is kept so the caller can release its resources.
func Run[C any](ctx context.Context, p Preparer[C], cfg C) (e effect.Effect, err error) {
	name := NameOf(p)

	defer func() {
		if r := recover(); r != nil {
			e = effect.Empty()
			err = &PrepareError{
				Name: name,
				Err:  fmt.Errorf("%w: %v\n%s", ErrPanic, r, debug.Stack()),
			}
		}
	}()

	e, err = p.Prepare(ctx, cfg)
	if err != nil {
		if _, ok := err.(*PrepareError); ok {
			return e, err
		}
		return e, &PrepareError{Name: name, Err: err}
	}
	return e, nil
}
