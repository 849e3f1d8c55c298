package task

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
)

// Parallel runs tasks concurrently and collects their results in input order.
//
// It fails fast on the first failure with a parallel error carrying the
// failing index. Siblings already started are not cancelled: effects, once
// dispatched, run to completion.
func Parallel[A any](tasks []Task[A]) Task[[]A] {
	return parallel(tasks, 0)
}

// ParallelN is Parallel with at most n tasks in flight at any time.
// Tasks are started in input order.
func ParallelN[A any](n int, tasks []Task[A]) Task[[]A] {
	if t, ok := validated[[]A]("parallelN", positiveLimit(n)); !ok {
		return t
	}
	return parallel(tasks, n)
}

func parallel[A any](tasks []Task[A], limit int) Task[[]A] {
	if len(tasks) == 0 {
		return Pure([]A{})
	}
	e := effects.Parallel{Tasks: programs(tasks), Limit: limit}
	return FlatMap(perform[[]any](e), func(vs []any) Task[[]A] {
		out, err := helper.CastSlice[A](vs)
		if err != nil {
			return Fail[[]A](NewExecutionError(e, err))
		}
		return Pure(out)
	})
}

// Race settles with whichever task settles first, success or failure.
// Losers are not cancelled while the run goes on and may still complete in
// the background. Once the whole run settles, its context is cancelled, so
// losers still sleeping or running a process are stopped then.
func Race[A any](tasks []Task[A]) Task[A] {
	if t, ok := validated[A]("race", nonEmptyTasks(len(tasks))); !ok {
		return t
	}
	return perform[A](effects.Race{Tasks: programs(tasks)})
}

// Zip runs a and b concurrently and pairs their results.
func Zip[A, B any](a Task[A], b Task[B]) Task[Pair[A, B]] {
	e := effects.Parallel{Tasks: []effects.Program{a.Node(), b.Node()}}
	return FlatMap(perform[[]any](e), func(vs []any) Task[Pair[A, B]] {
		first, err1 := helper.Cast[A](vs[0])
		second, err2 := helper.Cast[B](vs[1])
		if err := firstErr(err1, err2); err != nil {
			return Fail[Pair[A, B]](NewExecutionError(e, err))
		}
		return Pure(Pair[A, B]{First: first, Second: second})
	})
}

// Zip3 runs a, b and c concurrently and gathers their results.
func Zip3[A, B, C any](a Task[A], b Task[B], c Task[C]) Task[Triple[A, B, C]] {
	e := effects.Parallel{Tasks: []effects.Program{a.Node(), b.Node(), c.Node()}}
	return FlatMap(perform[[]any](e), func(vs []any) Task[Triple[A, B, C]] {
		first, err1 := helper.Cast[A](vs[0])
		second, err2 := helper.Cast[B](vs[1])
		third, err3 := helper.Cast[C](vs[2])
		if err := firstErr(err1, err2, err3); err != nil {
			return Fail[Triple[A, B, C]](NewExecutionError(e, err))
		}
		return Pure(Triple[A, B, C]{First: first, Second: second, Third: third})
	})
}

func programs[A any](tasks []Task[A]) []effects.Program {
	ps := make([]effects.Program, len(tasks))
	for i, t := range tasks {
		ps[i] = t.Node()
	}
	return ps
}

func positiveLimit(n int) error {
	if n < 1 {
		return fmt.Errorf("concurrency limit must be at least 1, got %d", n)
	}
	return nil
}

func nonEmptyTasks(n int) error {
	if n == 0 {
		return fmt.Errorf("at least one task is required")
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
