package task

// Result is a settled outcome turned into a value by Attempt.
type Result[A any] struct {
	Value A
	Err   error
}

// Ok reports whether the outcome was a success.
func (r Result[A]) Ok() bool { return r.Err == nil }

// Option is a possibly absent value produced by Optional.
type Option[A any] struct {
	Value   A
	Present bool
}

// Get returns the value and whether it is present.
func (o Option[A]) Get() (A, bool) { return o.Value, o.Present }

// OrElse returns the value, or fallback when absent.
func (o Option[A]) OrElse(fallback A) A {
	if o.Present {
		return o.Value
	}
	return fallback
}

// Pair is the result of Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the result of Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}
