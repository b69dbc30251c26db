package effect_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/effect"
)

func text(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}
}

func serve(t *testing.T, h http.Handler, method, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func apply(routes ...effect.RouteEffect) chi.Router {
	r := chi.NewRouter()
	for _, re := range effect.RouteOnly(routes...).Routes() {
		re.SetRoute(r)
	}
	return r
}

func TestRouteEffects(t *testing.T) {
	t.Parallel()

	t.Run("single method route", func(t *testing.T) {
		r := apply(effect.Get("/health", text("ok")))

		code, body := serve(t, r, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body)

		code, _ = serve(t, r, http.MethodPost, "/health")
		assert.Equal(t, http.StatusMethodNotAllowed, code)
	})

	t.Run("handle all methods", func(t *testing.T) {
		r := apply(effect.Handle("/any", text("any")))

		for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			code, body := serve(t, r, m, "/any")
			assert.Equal(t, http.StatusOK, code, m)
			assert.Equal(t, "any", body, m)
		}
	})

	t.Run("nest sub-router", func(t *testing.T) {
		sub := chi.NewRouter()
		sub.Get("/a", text("nested"))

		r := apply(effect.Nest("/api/v1", sub))

		code, body := serve(t, r, http.MethodGet, "/api/v1/a")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "nested", body)
	})

	t.Run("merge router keeps middlewares", func(t *testing.T) {
		other := chi.NewRouter()
		other.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Merged", "yes")
				next.ServeHTTP(w, r)
			})
		})
		other.Get("/merged", text("merged"))
		other.Post("/merged", text("posted"))

		r := apply(effect.Post("/own", text("own")), effect.Merge(other))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/merged", nil))
		assert.Equal(t, "merged", rec.Body.String())
		assert.Equal(t, "yes", rec.Header().Get("X-Merged"))

		_, body := serve(t, r, http.MethodPost, "/merged")
		assert.Equal(t, "posted", body)
		_, body = serve(t, r, http.MethodPost, "/own")
		assert.Equal(t, "own", body)
	})

	t.Run("fallback", func(t *testing.T) {
		r := apply(effect.Get("/known", text("known")), effect.Fallback(text("oops")))

		_, body := serve(t, r, http.MethodGet, "/unknown/path")
		assert.Equal(t, "oops", body)
	})

	t.Run("method not allowed", func(t *testing.T) {
		r := apply(effect.Get("/only-get", text("get")), effect.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		code, _ := serve(t, r, http.MethodPut, "/only-get")
		assert.Equal(t, http.StatusTeapot, code)
	})

	t.Run("route func", func(t *testing.T) {
		r := apply(effect.RouteFunc(func(r chi.Router) {
			r.Route("/group", func(r chi.Router) {
				r.Get("/x", text("x"))
			})
		}))

		_, body := serve(t, r, http.MethodGet, "/group/x")
		assert.Equal(t, "x", body)
	})
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	type dbName string
	type counter struct{ n int }

	t.Run("layer injects values", func(t *testing.T) {
		c := &counter{n: 7}
		h := effect.Layer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, ok := effect.From[dbName](r.Context())
			assert.True(t, ok)
			got := effect.MustFrom[*counter](r.Context())
			io.WriteString(w, string(name))
			assert.Same(t, c, got)
		}), effect.Provide(dbName("main")), effect.Provide(c))

		_, body := serve(t, h, http.MethodGet, "/")
		assert.Equal(t, "main", body)
	})

	t.Run("later value of the same type wins", func(t *testing.T) {
		ctx := effect.InjectAll(context.Background(), effect.Provide(dbName("first")), effect.Provide(dbName("second")))
		got, ok := effect.From[dbName](ctx)
		require.True(t, ok)
		assert.Equal(t, dbName("second"), got)
	})

	t.Run("missing value", func(t *testing.T) {
		_, ok := effect.From[dbName](context.Background())
		assert.False(t, ok)

		assert.PanicsWithError(t, "effect: no extension of type effect_test.dbName provided", func() {
			effect.MustFrom[dbName](context.Background())
		})
	})

	t.Run("extension func", func(t *testing.T) {
		type key struct{}
		ext := effect.ExtensionFunc(func(ctx context.Context) context.Context {
			return context.WithValue(ctx, key{}, "raw")
		})
		ctx := effect.InjectAll(context.Background(), ext)
		assert.Equal(t, "raw", ctx.Value(key{}))
	})

	t.Run("layer without extensions returns handler as is", func(t *testing.T) {
		h := http.NotFoundHandler()
		assert.NotNil(t, effect.Layer(h))
	})
}

func TestOnContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	g := effect.OnContext(ctx)

	select {
	case <-g:
		t.Fatal("closed too early")
	default:
	}

	cancel()
	<-g
}
