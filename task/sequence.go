package task

import "slices"

// Sequence runs tasks in order, each completing before the next starts,
// and stops at the first failure.
func Sequence[A any](tasks []Task[A]) Task[[]A] {
	return Traverse(slices.Clone(tasks), func(t Task[A]) Task[A] { return t })
}

// Sequence_ is Sequence without the results.
func Sequence_[A any](tasks []Task[A]) Task[Unit] {
	return Void(Sequence(tasks))
}

// Traverse maps every input to a task and runs them in input order.
// f is called for an input only once every earlier task has succeeded.
func Traverse[A, B any](inputs []A, f func(A) Task[B]) Task[[]B] {
	inputs = slices.Clone(inputs)
	return traverseFrom(inputs, f, 0, nil)
}

// Traverse_ is Traverse without the results.
func Traverse_[A, B any](inputs []A, f func(A) Task[B]) Task[Unit] {
	return Void(Traverse(inputs, f))
}

func traverseFrom[A, B any](inputs []A, f func(A) Task[B], i int, acc []B) Task[[]B] {
	if i == len(inputs) {
		if acc == nil {
			acc = []B{}
		}
		return Pure(acc)
	}
	return FlatMap(f(inputs[i]), func(b B) Task[[]B] {
		// acc is never appended in place: re-runs must not share a backing array.
		return traverseFrom(inputs, f, i+1, append(acc[:len(acc):len(acc)], b))
	})
}
