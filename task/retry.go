package task

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry re-attempts a failing t up to n more times and surfaces the error
// of the final attempt. Retry(t, 2) runs t at most three times.
func Retry[A any](t Task[A], n int) Task[A] {
	if v, ok := validated[A]("retry", requireNonNegative("retries", int64(n))); !ok {
		return v
	}
	return retryWith(t, make([]time.Duration, n))
}

// RetryWithBackoff is Retry waiting base * 2^attempt before each re-attempt,
// attempt counting from zero.
func RetryWithBackoff[A any](t Task[A], n int, base time.Duration) Task[A] {
	if v, ok := validated[A](
		"retryWithBackoff",
		requireNonNegative("retries", int64(n)),
		requireNonNegative("base delay", int64(base)),
	); !ok {
		return v
	}
	return retryWith(t, BackoffSchedule(n, base))
}

func retryWith[A any](t Task[A], delays []time.Duration) Task[A] {
	if len(delays) == 0 {
		return t
	}
	return Recover(t, func(error) Task[A] {
		next := retryWith(t, delays[1:])
		if delays[0] == 0 {
			return next
		}
		return FlatMap(Sleep(delays[0]), func(Unit) Task[A] { return next })
	})
}

// BackoffSchedule returns the n delays RetryWithBackoff waits: base, 2*base, 4*base, ...
func BackoffSchedule(n int, base time.Duration) []time.Duration {
	delays := make([]time.Duration, 0, n)
	if base <= 0 {
		return append(delays, make([]time.Duration, n)...)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = base
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = time.Duration(math.MaxInt64)
	policy.MaxElapsedTime = 0
	policy.Reset()

	for range n {
		d := policy.NextBackOff()
		if d == backoff.Stop {
			d = policy.MaxInterval
		}
		delays = append(delays, d)
	}
	return delays
}
