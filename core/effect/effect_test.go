package effect_test

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/server"
)

// markRoute is a comparable stand-in for a route mutation.
type markRoute string

func (markRoute) SetRoute(chi.Router) {}

// markExt is a comparable stand-in for an extension.
type markExt string

func (markExt) Inject(ctx context.Context) context.Context { return ctx }

func signal() effect.Graceful {
	return make(chan struct{})
}

func sample(name string, graceful effect.Graceful) effect.Effect {
	return effect.Empty().
		WithRoute(markRoute(name + ".route")).
		WithExtension(markExt(name + ".ext")).
		WithServer(server.WithHTTP1Only()).
		WithGraceful(graceful)
}

func TestCombineOrder(t *testing.T) {
	t.Parallel()

	a := sample("a", nil)
	b := sample("b", nil)

	got := a.Combine(b)

	assert.Equal(t, []effect.RouteEffect{markRoute("a.route"), markRoute("b.route")}, got.Routes())
	assert.Equal(t, []effect.Extension{markExt("a.ext"), markExt("b.ext")}, got.Extensions())
	assert.Len(t, got.Server(), 2)
	assert.Nil(t, got.Graceful())
}

func TestCombineAssociative(t *testing.T) {
	t.Parallel()

	sa, sc := signal(), signal()
	a := sample("a", sa)
	b := sample("b", nil)
	c := sample("c", sc)

	left := a.Combine(b).Combine(c)
	right := a.Combine(b.Combine(c))

	assert.Equal(t, left.Routes(), right.Routes())
	assert.Equal(t, left.Extensions(), right.Extensions())
	assert.Len(t, right.Server(), len(left.Server()))
	assert.Equal(t, left.Graceful(), right.Graceful())
	assert.Equal(t, sa, left.Graceful())
}

func TestNeutralElement(t *testing.T) {
	t.Parallel()

	g := signal()
	e := sample("e", g)

	for name, got := range map[string]effect.Effect{
		"left identity":  effect.Empty().Combine(e),
		"right identity": e.Combine(effect.Empty()),
		"zero value":     effect.Effect{}.Combine(e),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, e.Routes(), got.Routes())
			assert.Equal(t, e.Extensions(), got.Extensions())
			assert.Len(t, got.Server(), 1)
			assert.Equal(t, g, got.Graceful())
		})
	}

	assert.True(t, effect.Empty().IsEmpty())
	assert.True(t, effect.Empty().Combine(effect.Empty()).IsEmpty())
	assert.True(t, effect.Concat().IsEmpty())
}

func TestGracefulFirstWins(t *testing.T) {
	t.Parallel()

	second, third := signal(), signal()
	effects := []effect.Effect{
		effect.RouteOnly(markRoute("first")),
		effect.GracefulOnly(second),
		effect.GracefulOnly(third),
	}

	got := effect.Concat(effects...)

	require.NotNil(t, got.Graceful())
	assert.Equal(t, second, got.Graceful())
	assert.NotEqual(t, third, got.Graceful())

	// WithGraceful follows the same rule
	assert.Equal(t, second, effect.GracefulOnly(second).WithGraceful(third).Graceful())
}

func TestBuildersSkipNil(t *testing.T) {
	t.Parallel()

	e := effect.Empty().
		WithRoute(nil).
		WithExtension(nil).
		WithServer(nil).
		WithGraceful(nil)

	assert.True(t, e.IsEmpty())
}

func TestEffectsDoNotAlias(t *testing.T) {
	t.Parallel()

	base := effect.RouteOnly(markRoute("base"))
	one := base.WithRoute(markRoute("one"))
	two := base.WithRoute(markRoute("two"))

	assert.Equal(t, []effect.RouteEffect{markRoute("base")}, base.Routes())
	assert.Equal(t, []effect.RouteEffect{markRoute("base"), markRoute("one")}, one.Routes())
	assert.Equal(t, []effect.RouteEffect{markRoute("base"), markRoute("two")}, two.Routes())

	routes := one.Routes()
	routes[0] = markRoute("mutated")
	assert.Equal(t, markRoute("base"), one.Routes()[0])
}

func TestShorthandConstructors(t *testing.T) {
	t.Parallel()

	assert.Len(t, effect.ExtensionOnly(markExt("x")).Extensions(), 1)
	assert.Len(t, effect.RouteOnly(markRoute("x"), markRoute("y")).Routes(), 2)
	assert.Len(t, effect.ServerOnly(server.WithHTTP1Only()).Server(), 1)
	assert.NotNil(t, effect.GracefulOnly(signal()).Graceful())
	assert.Equal(t, 2, len(effect.Combine(effect.RouteOnly(markRoute("x")), effect.RouteOnly(markRoute("y"))).Routes()))
}
