// Package result provides a two-branch success/failure container used by the
// request pipeline instead of error returns, so failures stay typed, carry a
// transport mapping, and are never silently discarded.
package result

// Result holds exactly one of a failure or a success value. The zero value is
// a failure carrying the zero failure value; construct through Ok or Fail.
type Result[F, S any] struct {
	failure F
	success S
	ok      bool
}

// Ok wraps a success value.
func Ok[F, S any](s S) Result[F, S] {
	return Result[F, S]{success: s, ok: true}
}

// Fail wraps a failure value.
func Fail[F, S any](f F) Result[F, S] {
	return Result[F, S]{failure: f}
}

// IsSuccess reports whether the success branch is populated.
func (r Result[F, S]) IsSuccess() bool { return r.ok }

// IsFailure reports whether the failure branch is populated.
func (r Result[F, S]) IsFailure() bool { return !r.ok }

// Success returns the success value with a comma-ok flag. There is no
// panicking unwrap on purpose; callers must branch.
func (r Result[F, S]) Success() (S, bool) {
	return r.success, r.ok
}

// Failure returns the failure value with a comma-ok flag.
func (r Result[F, S]) Failure() (F, bool) {
	return r.failure, !r.ok
}

// Map transforms the success branch and leaves a failure untouched.
func Map[F, S, T any](r Result[F, S], fn func(S) T) Result[F, T] {
	if !r.ok {
		return Fail[F, T](r.failure)
	}
	return Ok[F](fn(r.success))
}

// MapFailure transforms the failure branch and leaves a success untouched.
func MapFailure[F, G, S any](r Result[F, S], fn func(F) G) Result[G, S] {
	if r.ok {
		return Ok[G](r.success)
	}
	return Fail[G, S](fn(r.failure))
}

// Fold collapses the result by applying exactly one of the two functions.
func Fold[F, S, T any](r Result[F, S], onFailure func(F) T, onSuccess func(S) T) T {
	if r.ok {
		return onSuccess(r.success)
	}
	return onFailure(r.failure)
}
