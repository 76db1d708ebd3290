package loom

// Result represents either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail creates a failed Result.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Unpack returns the value and error in Go's conventional shape.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// Err returns the error, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// OrElse returns the held value, or fallback on failure.
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// MapResult transforms a successful value, propagating failure unchanged.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return Ok(fn(r.value))
}

// AndThen chains result-producing transforms, short-circuiting on failure.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return fn(r.value)
}
