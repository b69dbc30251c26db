package prepare_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

type config struct {
	DSN  string
	Port int
}

type tag string

func (tag) SetRoute(chi.Router) {}

func tagged(name string) effect.Effect {
	return effect.RouteOnly(tag(name))
}

type typedPreparer struct{}

func (typedPreparer) Prepare(context.Context, *config) (effect.Effect, error) {
	return effect.Empty(), errors.New("nope")
}

func TestNameOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "db", prepare.NameOf(prepare.Static[*config]("db", effect.Empty())))
	assert.Equal(t, "prepare_test.typedPreparer", prepare.NameOf(typedPreparer{}))
	assert.Equal(t, "concurrent", prepare.NameOf(prepare.NewSet[*config]()))
	assert.Equal(t, "infra", prepare.NameOf(prepare.NewSet[*config]("infra")))
}

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := &config{DSN: "postgres://", Port: 8080}

	t.Run("success", func(t *testing.T) {
		e, err := prepare.Run[*config](ctx, prepare.Infallible("routes", func(context.Context, *config) effect.Effect {
			return tagged("r")
		}), cfg)
		require.NoError(t, err)
		assert.Equal(t, []effect.RouteEffect{tag("r")}, e.Routes())
	})

	t.Run("error is attributed", func(t *testing.T) {
		_, err := prepare.Run[*config](ctx, typedPreparer{}, cfg)

		var pe *prepare.PrepareError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "prepare_test.typedPreparer", pe.Name)
		assert.EqualError(t, err, "preparer prepare_test.typedPreparer failed: nope")
	})

	t.Run("wrapped prepare error is attributed to the wrapper", func(t *testing.T) {
		inner := &prepare.PrepareError{Name: "inner", Err: errors.New("x")}
		_, err := prepare.Run[*config](ctx, prepare.Func("outer", func(context.Context, *config) (effect.Effect, error) {
			return effect.Empty(), fmt.Errorf("db: %w", inner)
		}), cfg)

		var pe *prepare.PrepareError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "outer", pe.Name)
		assert.EqualError(t, err, "preparer outer failed: db: preparer inner failed: x")
		assert.ErrorIs(t, err, inner)
	})

	t.Run("effect returned with an error is kept", func(t *testing.T) {
		e, err := prepare.Run[*config](ctx, prepare.Func("partial", func(context.Context, *config) (effect.Effect, error) {
			return tagged("half"), errors.New("half done")
		}), cfg)

		require.Error(t, err)
		assert.Equal(t, []effect.RouteEffect{tag("half")}, e.Routes())
	})

	t.Run("panic is recovered", func(t *testing.T) {
		e, err := prepare.Run[*config](ctx, prepare.Func("broken", func(context.Context, *config) (effect.Effect, error) {
			panic("kaboom")
		}), cfg)

		assert.True(t, e.IsEmpty())
		assert.ErrorIs(t, err, prepare.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("project passes only the view", func(t *testing.T) {
		var seen int
		p := prepare.Project("port", func(c *config) int { return c.Port }, func(_ context.Context, port int) (effect.Effect, error) {
			seen = port
			return effect.Empty(), nil
		})
		_, err := prepare.Run(ctx, p, cfg)
		require.NoError(t, err)
		assert.Equal(t, 8080, seen)
	})
}

func TestPrepareErrorMessage(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")

	assert.EqualError(t, &prepare.PrepareError{Step: 7, Name: "pg", Err: cause},
		"step 7 (pg) failed: connection refused")
	assert.EqualError(t, &prepare.PrepareError{Step: 3, Member: 2, Name: "redis", Err: cause},
		"step 3 (redis, concurrent member 2) failed: connection refused")
	assert.EqualError(t, &prepare.PrepareError{Member: 1, Name: "s3", Err: cause},
		"concurrent member 1 (s3) failed: connection refused")

	err := prepare.AtStep(&prepare.PrepareError{Member: 2, Name: "redis", Err: cause}, 3, "concurrent")
	assert.EqualError(t, err, "step 3 (redis, concurrent member 2) failed: connection refused")
	assert.ErrorIs(t, err, cause)

	assert.EqualError(t, prepare.AtStep(cause, 1, "plain"), "step 1 (plain) failed: connection refused")

	wrapped := fmt.Errorf("retry: %w", &prepare.PrepareError{Name: "inner", Err: cause})
	assert.EqualError(t, prepare.AtStep(wrapped, 2, "outer"), "step 2 (outer) failed: retry: preparer inner failed: connection refused")
	assert.NoError(t, prepare.AtStep(nil, 1, "plain"))
}

func TestSetFailCompleteJoinOrder(t *testing.T) {
	t.Parallel()

	var completed atomic.Int32
	slow := func(d time.Duration, err error) func(context.Context, *config) (effect.Effect, error) {
		return func(context.Context, *config) (effect.Effect, error) {
			time.Sleep(d)
			completed.Add(1)
			return effect.Empty(), err
		}
	}

	first := errors.New("first failed")
	third := errors.New("third failed")

	set := prepare.NewSet[*config]().
		JoinFunc("one", slow(0, first)).
		JoinFunc("two", slow(80*time.Millisecond, nil)).
		JoinFunc("three", slow(120*time.Millisecond, third))

	start := time.Now()
	_, err := set.Prepare(context.Background(), &config{})

	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond, "set must wait for every member")
	assert.Equal(t, int32(3), completed.Load())
	require.ErrorIs(t, err, first)

	var pe *prepare.PrepareError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Member)
	assert.Equal(t, "one", pe.Name)
}

func TestSetErrorPicksJoinOrderNotCompletionOrder(t *testing.T) {
	t.Parallel()

	early := errors.New("finished first")
	late := errors.New("joined first")

	set := prepare.NewSet[*config]().
		JoinFunc("a", func(context.Context, *config) (effect.Effect, error) {
			time.Sleep(60 * time.Millisecond)
			return effect.Empty(), late
		}).
		JoinFunc("b", func(context.Context, *config) (effect.Effect, error) {
			return effect.Empty(), early
		})

	_, err := set.Prepare(context.Background(), &config{})
	assert.ErrorIs(t, err, late)
	assert.NotErrorIs(t, err, early)
}

func TestSetCombinesInJoinOrder(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{50 * time.Millisecond, 0, 25 * time.Millisecond}
	names := []string{"a", "b", "c"}

	set := prepare.NewSet[*config]()
	for i := range names {
		set.Join(prepare.Func(names[i], func(context.Context, *config) (effect.Effect, error) {
			time.Sleep(delays[i])
			return tagged(names[i]), nil
		}))
	}
	assert.Equal(t, 3, set.Len())

	e, err := set.Prepare(context.Background(), &config{})
	require.NoError(t, err)
	assert.Equal(t, []effect.RouteEffect{tag("a"), tag("b"), tag("c")}, e.Routes())
}

func TestSetEmptyAndConsumed(t *testing.T) {
	t.Parallel()

	set := prepare.NewSet[*config]()
	e, err := set.Prepare(context.Background(), &config{})
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())

	_, err = set.Prepare(context.Background(), &config{})
	assert.ErrorIs(t, err, prepare.ErrSetConsumed)
}

func TestSetMembersShareConfig(t *testing.T) {
	t.Parallel()

	cfg := &config{DSN: "shared"}
	var hits atomic.Int32

	set := prepare.NewSet[*config]()
	for range 5 {
		set.JoinFunc("reader", func(_ context.Context, c *config) (effect.Effect, error) {
			if c == cfg && c.DSN == "shared" {
				hits.Add(1)
			}
			return effect.Empty(), nil
		})
	}

	_, err := set.Prepare(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(5), hits.Load())
}

func TestNestedSetKeepsInnerAttribution(t *testing.T) {
	t.Parallel()
	cause := errors.New("inner")

	inner := prepare.NewSet[*config]("inner").
		Join(prepare.Static[*config]("ok", effect.Empty())).
		JoinFunc("bad", func(context.Context, *config) (effect.Effect, error) {
			return effect.Empty(), cause
		})
	outer := prepare.NewSet[*config]("outer").Join(inner)

	_, err := outer.Prepare(context.Background(), &config{})

	var pe *prepare.PrepareError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad", pe.Name)
	assert.Equal(t, 2, pe.Member)
	assert.ErrorIs(t, err, cause)
}

func TestSetMemberPanic(t *testing.T) {
	t.Parallel()

	set := prepare.NewSet[*config]().
		Join(prepare.Static[*config]("fine", effect.Empty())).
		JoinFunc("explodes", func(context.Context, *config) (effect.Effect, error) {
			panic(errors.New("boom"))
		})

	_, err := set.Prepare(context.Background(), &config{})
	require.ErrorIs(t, err, prepare.ErrPanic)

	var pe *prepare.PrepareError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Member)
	assert.Equal(t, "explodes", pe.Name)
}

func TestSetFailureKeepsMemberShutdownHooks(t *testing.T) {
	t.Parallel()

	var released atomic.Int32
	opened := func(context.Context, *config) (effect.Effect, error) {
		return effect.ServerOnly(server.WithShutdownHook(func(context.Context) error {
			released.Add(1)
			return nil
		})), nil
	}

	set := prepare.NewSet[*config]().
		JoinFunc("pool", opened).
		JoinFunc("broken", func(context.Context, *config) (effect.Effect, error) {
			return effect.Empty(), errors.New("refused")
		}).
		JoinFunc("cache", opened)

	e, err := set.Prepare(context.Background(), &config{})
	require.Error(t, err)
	require.Len(t, e.Server(), 2)

	require.NoError(t, server.New("127.0.0.1:0", e.Server()...).Stop())
	assert.Equal(t, int32(2), released.Load())
}
