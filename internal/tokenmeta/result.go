package tokenmeta

// Result is the outcome of one contract read: a value, or a failure.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successful read.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failed wraps a reverted or otherwise failed read.
func Failed[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Get returns the value and whether the read succeeded.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// Err returns the failure cause, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Reverted reports whether the read failed.
func (r Result[T]) Reverted() bool {
	return !r.ok
}
