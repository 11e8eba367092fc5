// Package pipeline implements the request-authorization chain fronting the
// API: typed request middlewares, a sequential short-circuiting combinator,
// the source-IP gate, and the adapter that turns a handler result into an
// HTTP response.
package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"notifygate/internal/apiresponse"
	"notifygate/pkg/result"
)

// Middleware derives a typed value from the incoming request, or fails with
// a terminal response. Middlewares only consume the request and values
// produced by earlier stages; they must not write to the ResponseWriter.
type Middleware[T any] func(r *http.Request) result.Result[apiresponse.ErrorResponse, T]

// Tuple2 through Tuple4 carry the ordered success values of a composed chain.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Compose2 runs the middlewares strictly in order and stops at the first
// failure, returning it unmodified; later middlewares are never invoked.
func Compose2[A, B any](ma Middleware[A], mb Middleware[B]) Middleware[Tuple2[A, B]] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, Tuple2[A, B]] {
		ra := ma(r)
		if f, failed := ra.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple2[A, B]](f)
		}
		rb := mb(r)
		if f, failed := rb.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple2[A, B]](f)
		}
		a, _ := ra.Success()
		b, _ := rb.Success()
		return result.Ok[apiresponse.ErrorResponse](Tuple2[A, B]{V1: a, V2: b})
	}
}

// Compose3 is Compose2 extended to three middlewares.
func Compose3[A, B, C any](ma Middleware[A], mb Middleware[B], mc Middleware[C]) Middleware[Tuple3[A, B, C]] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, Tuple3[A, B, C]] {
		ra := ma(r)
		if f, failed := ra.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple3[A, B, C]](f)
		}
		rb := mb(r)
		if f, failed := rb.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple3[A, B, C]](f)
		}
		rc := mc(r)
		if f, failed := rc.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple3[A, B, C]](f)
		}
		a, _ := ra.Success()
		b, _ := rb.Success()
		c, _ := rc.Success()
		return result.Ok[apiresponse.ErrorResponse](Tuple3[A, B, C]{V1: a, V2: b, V3: c})
	}
}

// Compose4 is Compose2 extended to four middlewares.
func Compose4[A, B, C, D any](ma Middleware[A], mb Middleware[B], mc Middleware[C], md Middleware[D]) Middleware[Tuple4[A, B, C, D]] {
	return func(r *http.Request) result.Result[apiresponse.ErrorResponse, Tuple4[A, B, C, D]] {
		ra := ma(r)
		if f, failed := ra.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple4[A, B, C, D]](f)
		}
		rb := mb(r)
		if f, failed := rb.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple4[A, B, C, D]](f)
		}
		rc := mc(r)
		if f, failed := rc.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple4[A, B, C, D]](f)
		}
		rd := md(r)
		if f, failed := rd.Failure(); failed {
			return result.Fail[apiresponse.ErrorResponse, Tuple4[A, B, C, D]](f)
		}
		a, _ := ra.Success()
		b, _ := rb.Success()
		c, _ := rc.Success()
		d, _ := rd.Success()
		return result.Ok[apiresponse.ErrorResponse](Tuple4[A, B, C, D]{V1: a, V2: b, V3: c, V4: d})
	}
}

// HandlerFunc2 through HandlerFunc4 are business handlers over the values an
// equally sized middleware chain produced.
type HandlerFunc2[A, B any] func(ctx context.Context, a A, b B) result.Result[apiresponse.ErrorResponse, apiresponse.Success]

type HandlerFunc3[A, B, C any] func(ctx context.Context, a A, b B, c C) result.Result[apiresponse.ErrorResponse, apiresponse.Success]

type HandlerFunc4[A, B, C, D any] func(ctx context.Context, a A, b B, c C, d D) result.Result[apiresponse.ErrorResponse, apiresponse.Success]

// Observer is notified of every terminal response kind. Implementations feed
// metrics and the security audit trail; a nil Observer is valid.
type Observer interface {
	Observe(r *http.Request, kind apiresponse.Kind, detail string)
}

// Handler2 composes the middlewares with the handler and adapts the outcome
// to an HTTP response. Exactly one terminal response is written per request;
// panics below this boundary surface as ErrorInternal.
func Handler2[A, B any](obs Observer, ma Middleware[A], mb Middleware[B], h HandlerFunc2[A, B]) http.HandlerFunc {
	composed := Compose2(ma, mb)
	return func(w http.ResponseWriter, r *http.Request) {
		res := protect(func() result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
			t := composed(r)
			if f, failed := t.Failure(); failed {
				return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](f)
			}
			v, _ := t.Success()
			return h(r.Context(), v.V1, v.V2)
		})
		write(w, r, obs, res)
	}
}

// Handler3 is Handler2 for a three-middleware chain.
func Handler3[A, B, C any](obs Observer, ma Middleware[A], mb Middleware[B], mc Middleware[C], h HandlerFunc3[A, B, C]) http.HandlerFunc {
	composed := Compose3(ma, mb, mc)
	return func(w http.ResponseWriter, r *http.Request) {
		res := protect(func() result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
			t := composed(r)
			if f, failed := t.Failure(); failed {
				return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](f)
			}
			v, _ := t.Success()
			return h(r.Context(), v.V1, v.V2, v.V3)
		})
		write(w, r, obs, res)
	}
}

// Handler4 is Handler2 for a four-middleware chain.
func Handler4[A, B, C, D any](obs Observer, ma Middleware[A], mb Middleware[B], mc Middleware[C], md Middleware[D], h HandlerFunc4[A, B, C, D]) http.HandlerFunc {
	composed := Compose4(ma, mb, mc, md)
	return func(w http.ResponseWriter, r *http.Request) {
		res := protect(func() result.Result[apiresponse.ErrorResponse, apiresponse.Success] {
			t := composed(r)
			if f, failed := t.Failure(); failed {
				return result.Fail[apiresponse.ErrorResponse, apiresponse.Success](f)
			}
			v, _ := t.Success()
			return h(r.Context(), v.V1, v.V2, v.V3, v.V4)
		})
		write(w, r, obs, res)
	}
}

// protect converts panics from middlewares or handlers into ErrorInternal so
// the adapter still produces exactly one terminal response.
func protect(fn func() result.Result[apiresponse.ErrorResponse, apiresponse.Success]) (res result.Result[apiresponse.ErrorResponse, apiresponse.Success]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = result.Fail[apiresponse.ErrorResponse, apiresponse.Success](
				apiresponse.InternalError(fmt.Sprintf("unexpected failure: %v", rec)))
		}
	}()
	return fn()
}

func write(w http.ResponseWriter, r *http.Request, obs Observer, res result.Result[apiresponse.ErrorResponse, apiresponse.Success]) {
	if f, failed := res.Failure(); failed {
		if obs != nil {
			obs.Observe(r, f.Kind, f.Detail)
		}
		apiresponse.WriteError(w, f)
		return
	}
	s, _ := res.Success()
	if obs != nil {
		obs.Observe(r, s.Kind, "")
	}
	apiresponse.WriteSuccess(w, s)
}
