package pipeline

// Outcome is the tagged result of one attempted stage. A zero Outcome means
// the stage was never tried; an attempted outcome holds exactly one of a
// value or an error. There is no partial or streaming variant.
type Outcome[T any] struct {
	value     T
	err       error
	attempted bool
}

// Success wraps a stage's artifact.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, attempted: true}
}

// Failure wraps a stage's classified error.
func Failure[T any](err error) Outcome[T] {
	return Outcome[T]{err: err, attempted: true}
}

// Attempted reports whether the stage was invoked at all.
func (o Outcome[T]) Attempted() bool { return o.attempted }

// OK reports whether the stage produced an artifact.
func (o Outcome[T]) OK() bool { return o.attempted && o.err == nil }

// Value returns the artifact; the zero value when the stage did not succeed.
func (o Outcome[T]) Value() T { return o.value }

// Err returns the classified failure, nil otherwise.
func (o Outcome[T]) Err() error { return o.err }
