package task

// Bracket acquires a resource, uses it and always releases it.
//
// release runs exactly once after use settles, whether use succeeded or
// failed. If use failed, its original error is re-raised after release
// completes, even when release fails too. A failing release after a
// successful use fails the bracket with release's error. A panic in use
// counts as a failure of use. If acquire fails, neither use nor release run.
func Bracket[R, A any](acquire Task[R], use func(R) Task[A], release func(R) Task[Unit]) Task[A] {
	return FlatMap(acquire, func(r R) Task[A] {
		return FlatMap(Attempt(Defer(func() Task[A] { return use(r) })), func(used Result[A]) Task[A] {
			return FlatMap(Attempt(Defer(func() Task[Unit] { return release(r) })), func(released Result[Unit]) Task[A] {
				switch {
				case used.Err != nil:
					return Fail[A](used.Err)
				case released.Err != nil:
					return Fail[A](released.Err)
				default:
					return Pure(used.Value)
				}
			})
		})
	})
}

// Ensure runs finalizer after t settles, whatever the outcome.
func Ensure[A any](t Task[A], finalizer Task[Unit]) Task[A] {
	return Bracket(
		Noop(),
		func(Unit) Task[A] { return t },
		func(Unit) Task[Unit] { return finalizer },
	)
}
