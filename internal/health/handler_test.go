package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workout/pkg/testutil"
)

func newRouter(opts ...Option) http.Handler {
	r := chi.NewRouter()
	New(slog.New(slog.DiscardHandler), opts...).Register(r)
	return r
}

func TestHandleRoot(t *testing.T) {
	rr := testutil.DoRequest(newRouter(), testutil.NewRequest(t, http.MethodGet, "/"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[Response](t, rr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "WorkoutAPI está funcionando!", resp.Message)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHandleReady(t *testing.T) {
	ok := CheckerFunc(func(context.Context) error { return nil })
	down := CheckerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("no dependencies is ready", func(t *testing.T) {
		rr := testutil.DoRequest(newRouter(), testutil.NewRequest(t, http.MethodGet, "/healthz/ready"))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("all dependencies up", func(t *testing.T) {
		router := newRouter(WithChecker("postgres", ok), WithChecker("redis", ok))
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz/ready"))

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ReadyResponse](t, rr)
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, resp.Checks)
	})

	t.Run("one dependency down", func(t *testing.T) {
		router := newRouter(WithChecker("postgres", ok), WithChecker("redis", down))
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz/ready"))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		resp := testutil.UnmarshalResponse[ReadyResponse](t, rr)
		assert.Equal(t, "unavailable", resp.Status)
		assert.Equal(t, "ok", resp.Checks["postgres"])
		assert.Equal(t, "unavailable", resp.Checks["redis"])
	})

	t.Run("checks run under a deadline", func(t *testing.T) {
		var hasDeadline bool
		probe := CheckerFunc(func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		})
		testutil.DoRequest(newRouter(WithChecker("probe", probe)), testutil.NewRequest(t, http.MethodGet, "/healthz/ready"))
		assert.True(t, hasDeadline)
	})
}

func TestWithCheckerIgnoresNil(t *testing.T) {
	h := New(slog.New(slog.DiscardHandler), WithChecker("redis", nil))
	assert.Empty(t, h.checkers)
}
