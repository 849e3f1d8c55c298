package task

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/internal/free"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
)

// Unit is the result of tasks run only for their effects.
type Unit = struct{}

// Task is a lazy description of a program producing an A.
//
// A Task is immutable. Building one performs nothing; interpreting it twice
// performs its effects twice. The zero Task succeeds with A's zero value.
type Task[A any] struct {
	node free.Node
}

// Node exposes the underlying tree to interpreters.
func (t Task[A]) Node() free.Node {
	if t.node == nil {
		return free.Pure{}
	}
	return t.node
}

// PendingEffect returns the first effect t would perform, or nil if it settles without one.
func (t Task[A]) PendingEffect() effects.Effect {
	return t.Node().PendingEffect()
}

func fromNode[A any](n free.Node) Task[A] {
	return Task[A]{node: n}
}

// Pure succeeds with v without performing any effect.
func Pure[A any](v A) Task[A] {
	return fromNode[A](free.Pure{Value: v})
}

// Succeed is an alias of Pure.
func Succeed[A any](v A) Task[A] {
	return Pure(v)
}

// Noop succeeds with Unit.
func Noop() Task[Unit] {
	return Pure(Unit{})
}

// Fail short-circuits with err. Non-TaskErrors are wrapped as KindFailure.
func Fail[A any](err error) Task[A] {
	if err == nil {
		err = NewError(KindFailure, "task failed with a nil error", nil)
	}
	return fromNode[A](free.Fail{Err: AsTaskError(err)})
}

// FailWith short-circuits with a new TaskError of the given kind.
func FailWith[A any](kind ErrorKind, format string, args ...any) Task[A] {
	return fromNode[A](free.Fail{Err: NewError(kind, fmt.Sprintf(format, args...), nil)})
}

// FromEffect wraps exactly one effect whose result is supplied by the interpreter.
func FromEffect(e effects.Effect) Task[any] {
	return fromNode[any](free.Perform(e))
}

// perform wraps e and converts the interpreter's result to A.
// A result of the wrong type fails as an execution error of e.
func perform[A any](e effects.Effect) Task[A] {
	return FlatMap(FromEffect(e), func(v any) Task[A] {
		a, err := helper.Cast[A](v)
		if err != nil {
			return Fail[A](NewExecutionError(e, err))
		}
		return Pure(a)
	})
}

// FlatMap sequences t with f. If t fails, f is never invoked.
// A panic in f fails the task with a panic error.
func FlatMap[A, B any](t Task[A], f func(A) Task[B]) Task[B] {
	return fromNode[B](free.Bind(t.Node(), func(v any) free.Node {
		return guarded(func() free.Node { return f(helper.MustCast[A](v)).Node() })
	}))
}

// guarded runs next, turning a panic into a failed node so that Recover
// and the combinators built on it observe it like any other failure.
func guarded(next func() free.Node) (n free.Node) {
	defer func() {
		if r := recover(); r != nil {
			n = free.Fail{Err: NewPanicError(r)}
		}
	}()
	return next()
}

// Defer returns the task f builds. If f panics, the task fails with a panic error.
func Defer[A any](f func() Task[A]) Task[A] {
	return FlatMap(Noop(), func(Unit) Task[A] { return f() })
}

// Map transforms the success value of t.
func Map[A, B any](t Task[A], f func(A) B) Task[B] {
	return FlatMap(t, func(a A) Task[B] {
		return Pure(f(a))
	})
}

// As discards t's value and succeeds with v instead.
func As[A, B any](t Task[A], v B) Task[B] {
	return Map(t, func(A) B { return v })
}

// Void discards t's value.
func Void[A any](t Task[A]) Task[Unit] {
	return As(t, Unit{})
}

// Recover converts a failure of t into the task returned by handler.
func Recover[A any](t Task[A], handler func(error) Task[A]) Task[A] {
	return fromNode[A](free.Catch(t.Node(), func(err error) free.Node {
		return guarded(func() free.Node { return handler(err).Node() })
	}))
}

// MapError transforms only the error of a failing t.
func MapError[A any](t Task[A], f func(error) error) Task[A] {
	return Recover(t, func(err error) Task[A] {
		return Fail[A](f(err))
	})
}
