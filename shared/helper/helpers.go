package helper

import (
	"errors"
	"fmt"
)

// ErrUnexpectedType is returned when a value does not hold the expected type.
var ErrUnexpectedType = errors.New("unexpected type")

// Cast asserts v to T. A nil v yields T's zero value, so results of effects
// that produce nothing can flow through typed continuations.
func Cast[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	val, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrUnexpectedType, zero, v)
	}
	return val, nil
}

// MustCast is the panic-on-failure variant of Cast.
// Use when the producer of v is guaranteed to hand over a T.
func MustCast[T any](v any) T {
	res, err := Cast[T](v)
	if err != nil {
		panic(err)
	}
	return res
}

// CastSlice converts every element of vs to T.
func CastSlice[T any](vs []any) ([]T, error) {
	out := make([]T, len(vs))
	for i, v := range vs {
		t, err := Cast[T](v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
