package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifygate/internal/apiresponse"
	"notifygate/pkg/result"
)

func okMiddleware[T any](v T, calls *int) Middleware[T] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, T] {
		*calls++
		return result.Ok[apiresponse.ErrorResponse](v)
	}
}

func failMiddleware[T any](e apiresponse.ErrorResponse, calls *int) Middleware[T] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, T] {
		*calls++
		return result.Fail[apiresponse.ErrorResponse, T](e)
	}
}

func TestCompose3(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("all succeed in order", func(t *testing.T) {
		var a, b, c int
		composed := Compose3(
			okMiddleware("first", &a),
			okMiddleware(2, &b),
			okMiddleware(true, &c),
		)

		tup, ok := composed(req).Success()
		require.True(t, ok)
		assert.Equal(t, "first", tup.V1)
		assert.Equal(t, 2, tup.V2)
		assert.Equal(t, true, tup.V3)
		assert.Equal(t, 1, a)
		assert.Equal(t, 1, b)
		assert.Equal(t, 1, c)
	})

	t.Run("failure short-circuits later middlewares", func(t *testing.T) {
		var a, b, c int
		boom := apiresponse.ValidationError("bad", "second stage rejected")
		composed := Compose3(
			okMiddleware("first", &a),
			failMiddleware[int](boom, &b),
			okMiddleware(true, &c),
		)

		f, failed := composed(req).Failure()
		require.True(t, failed)
		assert.Equal(t, boom, f, "failure must be returned unmodified")
		assert.Equal(t, 1, a)
		assert.Equal(t, 1, b)
		assert.Equal(t, 0, c, "short-circuited middleware must not run")
	})

	t.Run("each middleware is invoked exactly once", func(t *testing.T) {
		var a, b, c int
		composed := Compose3(
			okMiddleware("a", &a),
			okMiddleware("b", &b),
			okMiddleware("c", &c),
		)
		_ = composed(req)
		assert.Equal(t, []int{1, 1, 1}, []int{a, b, c})
	})
}

func TestCompose2FailureFirst(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	var a, b int
	boom := apiresponse.ForbiddenAnonymousUser()
	composed := Compose2(failMiddleware[string](boom, &a), okMiddleware(1, &b))

	f, failed := composed(req).Failure()
	require.True(t, failed)
	assert.Equal(t, boom, f)
	assert.Equal(t, 0, b)
}

func TestHandler2(t *testing.T) {
	t.Run("success writes handler payload once", func(t *testing.T) {
		var a, b int
		h := Handler2(nil,
			okMiddleware("user-1", &a),
			okMiddleware(42, &b),
			func(ctx context.Context, user string, n int) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
				return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(map[string]any{"user": user, "n": n}))
			})

		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"user":"user-1","n":42}`, rr.Body.String())
	})

	t.Run("middleware failure skips the handler", func(t *testing.T) {
		var a int
		handlerRan := false
		h := Handler2(nil,
			failMiddleware[string](apiresponse.ForbiddenNotAuthorized("nope"), &a),
			okMiddleware(1, new(int)),
			func(ctx context.Context, _ string, _ int) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
				handlerRan = true
				return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(nil))
			})

		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), "ForbiddenNotAuthorized")
	})

	t.Run("handler panic becomes ErrorInternal", func(t *testing.T) {
		h := Handler2(nil,
			okMiddleware("x", new(int)),
			okMiddleware("y", new(int)),
			func(ctx context.Context, _, _ string) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
				panic("store exploded")
			})

		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "ErrorInternal")
		assert.Contains(t, rr.Body.String(), "store exploded")
	})
}

type recordingObserver struct {
	kinds   []apiresponse.Kind
	details []string
}

func (o *recordingObserver) Observe(r *http.Request, kind apiresponse.Kind, detail string) {
	o.kinds = append(o.kinds, kind)
	o.details = append(o.details, detail)
}

func TestHandlerObserver(t *testing.T) {
	t.Run("failure kind and detail reach the observer", func(t *testing.T) {
		obs := &recordingObserver{}
		h := Handler2(obs,
			failMiddleware[string](apiresponse.ForbiddenNotAuthorized("source ip rejected"), new(int)),
			okMiddleware(1, new(int)),
			func(ctx context.Context, _ string, _ int) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
				return result.Ok[apiresponse.ErrorResponse](apiresponse.OKJSON(nil))
			})

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, obs.kinds, 1, "exactly one terminal response per request")
		assert.Equal(t, apiresponse.KindForbiddenNotAuthorized, obs.kinds[0])
		assert.Equal(t, "source ip rejected", obs.details[0])
	})

	t.Run("success is observed with its kind", func(t *testing.T) {
		obs := &recordingObserver{}
		h := Handler2(obs,
			okMiddleware("x", new(int)),
			okMiddleware("y", new(int)),
			func(ctx context.Context, _, _ string) result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
				return result.Ok[apiresponse.ErrorResponse](apiresponse.CreatedJSON(map[string]string{"id": "1"}))
			})

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

		require.Len(t, obs.kinds, 1)
		assert.Equal(t, apiresponse.KindSuccessJSON, obs.kinds[0])
	})
}
