package loom

import "context"

// Task represents a deferred computation producing a single value. It is the
// well-known asynchronous-result wrapper the generator unwraps when building
// synchronous forwarding views: a method returning Task[T] gets a generated
// companion returning (T, error).
type Task[T any] struct {
	run func(ctx context.Context) Result[T]
}

// NewTask wraps a context-aware computation into a Task.
func NewTask[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	return Task[T]{run: func(ctx context.Context) Result[T] {
		value, err := fn(ctx)
		if err != nil {
			return Fail[T](err)
		}
		return Ok(value)
	}}
}

// Completed creates a Task that immediately yields the given value.
func Completed[T any](value T) Task[T] {
	return Task[T]{run: func(context.Context) Result[T] {
		return Ok(value)
	}}
}

// Failed creates a Task that immediately yields the given error.
func Failed[T any](err error) Task[T] {
	return Task[T]{run: func(context.Context) Result[T] {
		return Fail[T](err)
	}}
}

// Await runs the task to completion and unpacks its result. A cancelled
// context wins over the computation's own outcome.
func (t Task[T]) Await(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	if t.run == nil {
		var zero T
		return zero, nil
	}
	return t.run(ctx).Unpack()
}

// Then sequences a task-producing continuation after t.
func Then[T, U any](t Task[T], fn func(ctx context.Context, value T) Task[U]) Task[U] {
	return Task[U]{run: func(ctx context.Context) Result[U] {
		value, err := t.Await(ctx)
		if err != nil {
			return Fail[U](err)
		}
		return resultOf(fn(ctx, value), ctx)
	}}
}

// MapTask transforms the eventual value of a task.
func MapTask[T, U any](t Task[T], fn func(T) U) Task[U] {
	return Task[U]{run: func(ctx context.Context) Result[U] {
		value, err := t.Await(ctx)
		if err != nil {
			return Fail[U](err)
		}
		return Ok(fn(value))
	}}
}

func resultOf[T any](t Task[T], ctx context.Context) Result[T] {
	value, err := t.Await(ctx)
	if err != nil {
		return Fail[T](err)
	}
	return Ok(value)
}
