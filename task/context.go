package task

import (
	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
)

// LookupContext reads the generator context variable key.
func LookupContext(key string) Task[Option[any]] {
	if t, ok := validated[Option[any]]("getContext", requireNonEmpty("key", key)); !ok {
		return t
	}
	return Map(perform[effects.ContextValue](effects.ReadContext{Key: key}), func(cv effects.ContextValue) Option[any] {
		return Option[any]{Value: cv.Value, Present: cv.Present}
	})
}

// GetContext reads the generator context variable key as a V.
// A missing key yields V's zero value; a value of another type fails.
func GetContext[V any](key string) Task[V] {
	return FlatMap(LookupContext(key), func(o Option[any]) Task[V] {
		v, err := helper.Cast[V](o.Value)
		if err != nil {
			return Fail[V](NewExecutionError(effects.ReadContext{Key: key}, err))
		}
		return Pure(v)
	})
}

// SetContext sets the generator context variable key.
func SetContext(key string, value any) Task[Unit] {
	if t, ok := validated[Unit]("setContext", requireNonEmpty("key", key)); !ok {
		return t
	}
	return Void(FromEffect(effects.WriteContext{Key: key, Value: value}))
}

// DeleteContext removes the generator context variable key.
func DeleteContext(key string) Task[Unit] {
	if t, ok := validated[Unit]("deleteContext", requireNonEmpty("key", key)); !ok {
		return t
	}
	return Void(FromEffect(effects.WriteContext{Key: key, Delete: true}))
}

// WithContext runs t with key bound to value, then restores whatever key held
// before, whether t succeeded or failed.
func WithContext[A any](key string, value any, t Task[A]) Task[A] {
	if v, ok := validated[A]("withContext", requireNonEmpty("key", key)); !ok {
		return v
	}
	acquire := FlatMap(LookupContext(key), func(prior Option[any]) Task[Option[any]] {
		return As(SetContext(key, value), prior)
	})
	release := func(prior Option[any]) Task[Unit] {
		if prior.Present {
			return SetContext(key, prior.Value)
		}
		return DeleteContext(key)
	}
	return Bracket(acquire, func(Option[any]) Task[A] { return t }, release)
}
