package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/metrics"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

func TestPreparerServesRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "launchpad_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Add(3)

	e, err := prepare.Run(context.Background(), metrics.Preparer[struct{}]("", reg), struct{}{})
	require.NoError(t, err)

	r := chi.NewRouter()
	for _, re := range e.Routes() {
		re.SetRoute(r)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "launchpad_test_total 3")
}
