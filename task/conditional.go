package task

// IfElse picks then or otherwise by cond.
func IfElse[A any](cond bool, then, otherwise Task[A]) Task[A] {
	if cond {
		return then
	}
	return otherwise
}

// IfElseM picks then or otherwise by the result of cond.
func IfElseM[A any](cond Task[bool], then, otherwise Task[A]) Task[A] {
	return FlatMap(cond, func(ok bool) Task[A] {
		return IfElse(ok, then, otherwise)
	})
}

// When runs t only if cond holds.
func When(cond bool, t Task[Unit]) Task[Unit] {
	return IfElse(cond, t, Noop())
}

// Unless runs t only if cond does not hold.
func Unless(cond bool, t Task[Unit]) Task[Unit] {
	return When(!cond, t)
}

// WhenM runs t only if cond succeeds with true.
func WhenM(cond Task[bool], t Task[Unit]) Task[Unit] {
	return IfElseM(cond, t, Noop())
}

// UnlessM runs t only if cond succeeds with false.
func UnlessM(cond Task[bool], t Task[Unit]) Task[Unit] {
	return IfElseM(cond, Noop(), t)
}
