package task

// Attempt turns the outcome of t into a value, so a failure can be branched on inline.
func Attempt[A any](t Task[A]) Task[Result[A]] {
	ok := Map(t, func(a A) Result[A] { return Result[A]{Value: a} })
	return Recover(ok, func(err error) Task[Result[A]] {
		return Pure(Result[A]{Err: err})
	})
}

// Optional turns a failure of t into an absent value.
func Optional[A any](t Task[A]) Task[Option[A]] {
	present := Map(t, func(a A) Option[A] { return Option[A]{Value: a, Present: true} })
	return Recover(present, func(error) Task[Option[A]] {
		return Pure(Option[A]{})
	})
}

// Fold dispatches on the outcome of t. Failures of the chosen branch propagate.
func Fold[A, B any](t Task[A], onSuccess func(A) Task[B], onFailure func(error) Task[B]) Task[B] {
	return FlatMap(Attempt(t), func(r Result[A]) Task[B] {
		if r.Err != nil {
			return onFailure(r.Err)
		}
		return onSuccess(r.Value)
	})
}

// Tap observes the success value of t without changing the outcome.
// A failing observer fails the task.
func Tap[A any](t Task[A], observe func(A) Task[Unit]) Task[A] {
	return FlatMap(t, func(a A) Task[A] {
		return As(observe(a), a)
	})
}

// TapError observes the failure of t and re-raises it.
// A failing observer fails the task with the observer's error.
func TapError[A any](t Task[A], observe func(error) Task[Unit]) Task[A] {
	return Recover(t, func(err error) Task[A] {
		return FlatMap(observe(err), func(Unit) Task[A] {
			return Fail[A](err)
		})
	})
}
