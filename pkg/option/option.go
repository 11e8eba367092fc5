// Package option provides an optional-value container for fields that may
// legitimately be unset, such as a subscription with no registered service.
package option

// Option is either present with a value or absent. The zero value is absent.
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns the absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.present }

// IsNone reports whether the option is absent.
func (o Option[T]) IsNone() bool { return !o.present }

// Get returns the value with a comma-ok flag.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// GetOrElse returns the value when present, otherwise the fallback.
func (o Option[T]) GetOrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Filter keeps a present value only when pred holds for it.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if o.present && pred(o.value) {
		return o
	}
	return None[T]()
}

// Map transforms a present value and leaves an absent option absent.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.present {
		return None[U]()
	}
	return Some(fn(o.value))
}
