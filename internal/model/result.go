package model

// Result is the outcome of a single fetch: either a value or an error.
// Views consume fetch outcomes through Result so the failure path is always
// handled and rendered instead of being dropped.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps an error. A nil error is still treated as a failure of
// unknown cause so that OK never reports true for a Failure.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errUnknownFailure
	}
	return Result[T]{err: err}
}

// From builds a Result from the usual (value, error) pair.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Err returns the failure cause, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the value and the error.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
