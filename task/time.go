package task

import (
	"time"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// Sleep suspends the task for d.
func Sleep(d time.Duration) Task[Unit] {
	if t, ok := validated[Unit]("sleep", requireNonNegative("duration", int64(d))); !ok {
		return t
	}
	return Void(FromEffect(effects.Sleep{Duration: d}))
}

// Delay succeeds with v after d.
func Delay[A any](d time.Duration, v A) Task[A] {
	return As(Sleep(d), v)
}

// Timeout fails with a timeout error if t has not settled within d.
// The underlying operation is not cancelled while the run goes on; it may
// still complete. Once the whole run settles, its context is cancelled and
// an operation still sleeping or running a process is stopped then.
func Timeout[A any](t Task[A], d time.Duration) Task[A] {
	if v, ok := validated[A]("timeout", requireNonNegative("duration", int64(d))); !ok {
		return v
	}
	expire := FlatMap(Sleep(d), func(Unit) Task[A] {
		return Fail[A](NewTimeoutError(d))
	})
	return Race([]Task[A]{t, expire})
}
