package pkgapi

// Result is either a value (Ok) or an ErrorPayload (Err). The zero value is
// an Err with an empty payload.
type Result[T any] struct {
	ok      bool
	value   T
	payload ErrorPayload
}

// Ok returns a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// Err returns a failed result.
func Err[T any](payload ErrorPayload) Result[T] {
	return Result[T]{payload: payload}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the value; it is the zero value for a failed result.
func (r Result[T]) Value() T {
	return r.value
}

// Failure returns the payload and true for a failed result.
func (r Result[T]) Failure() (ErrorPayload, bool) {
	if r.ok {
		return ErrorPayload{}, false
	}
	return r.payload, true
}

// Unwrap returns the value or the payload as an error.
func (r Result[T]) Unwrap() (T, error) {
	if r.ok {
		return r.value, nil
	}
	return r.value, r.payload
}

// Map converts a successful value with fn, passing failures through.
func Map[T, U any](r Result[T], fn func(T) (U, bool)) Result[U] {
	if !r.ok {
		return Err[U](r.payload)
	}
	u, ok := fn(r.value)
	if !ok {
		return Err[U](DidNotSucceed())
	}
	return Ok(u)
}
