package task_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
	"github.com/on-the-ground/effect_ive_gen/task"
)

func dryRun[A any](t *testing.T, tk task.Task[A], opts ...interpreter.Option) interpreter.DryRunResult[A] {
	t.Helper()
	return interpreter.DryRunWith(context.Background(), tk, opts...)
}

func seed(files map[string]string) interpreter.Option {
	return interpreter.WithSeedFiles(files)
}

func TestPure_SucceedsWithoutEffects(t *testing.T) {
	res := dryRun(t, task.Pure(42))
	require.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
	assert.Zero(t, res.Log.Len())
}

func TestZeroTask_SucceedsWithZeroValue(t *testing.T) {
	var tk task.Task[string]
	res := dryRun(t, tk)
	require.NoError(t, res.Err)
	assert.Equal(t, "", res.Value)
}

func TestFlatMap_MonadLaws(t *testing.T) {
	files := seed(map[string]string{"a.txt": "abc"})
	readLen := func(p string) task.Task[int] {
		return task.Map(task.ReadFile(p), func(s string) int { return len(s) })
	}

	t.Run("left identity", func(t *testing.T) {
		bound := dryRun(t, task.FlatMap(task.Pure("a.txt"), readLen), files)
		direct := dryRun(t, readLen("a.txt"), files)
		require.NoError(t, bound.Err)
		assert.Equal(t, direct.Value, bound.Value)
		assert.Equal(t, direct.Log.Kinds(), bound.Log.Kinds())
	})

	t.Run("right identity", func(t *testing.T) {
		m := task.ReadFile("a.txt")
		bound := dryRun(t, task.FlatMap(m, task.Pure[string]), files)
		plain := dryRun(t, m, files)
		require.NoError(t, bound.Err)
		assert.Equal(t, plain.Value, bound.Value)
		assert.Equal(t, plain.Log.Kinds(), bound.Log.Kinds())
	})

	t.Run("associativity", func(t *testing.T) {
		m := task.ReadFile("a.txt")
		f := func(s string) task.Task[string] { return task.As(task.WriteFile("b.txt", s), s+"!") }
		g := func(s string) task.Task[int] { return task.Pure(len(s)) }

		lhs := dryRun(t, task.FlatMap(task.FlatMap(m, f), g), files)
		rhs := dryRun(t, task.FlatMap(m, func(s string) task.Task[int] { return task.FlatMap(f(s), g) }), files)
		require.NoError(t, lhs.Err)
		require.NoError(t, rhs.Err)
		assert.Equal(t, 4, lhs.Value)
		assert.Equal(t, lhs.Value, rhs.Value)
		assert.Equal(t, lhs.Log.Kinds(), rhs.Log.Kinds())
		assert.Equal(t, lhs.Files, rhs.Files)
	})
}

func TestFlatMap_FailureSkipsContinuation(t *testing.T) {
	called := false
	res := dryRun(t, task.FlatMap(task.ReadFile("missing.txt"), func(string) task.Task[int] {
		called = true
		return task.Pure(1)
	}))

	require.Error(t, res.Err)
	assert.False(t, called)
	assert.ErrorIs(t, res.Err, task.ErrExecution)
	assert.ErrorIs(t, res.Err, fs.ErrNotExist)

	e, ok := task.RootEffect(res.Err)
	require.True(t, ok)
	assert.Equal(t, effects.ReadFile{Path: "missing.txt"}, e)
}

func TestTask_IsReusable(t *testing.T) {
	tk := task.FlatMap(task.ReadFile("n.txt"), func(s string) task.Task[task.Unit] {
		return task.AppendFile("n.txt", s)
	})

	first := dryRun(t, tk, seed(map[string]string{"n.txt": "x"}))
	second := dryRun(t, tk, seed(map[string]string{"n.txt": "y"}))

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, "xx", first.Files["n.txt"])
	assert.Equal(t, "yy", second.Files["n.txt"])
}

func TestRecover_ReplacesFailure(t *testing.T) {
	var seen error
	res := dryRun(t, task.Recover(task.ReadFile("missing.txt"), func(err error) task.Task[string] {
		seen = err
		return task.Pure("fallback")
	}))

	require.NoError(t, res.Err)
	assert.Equal(t, "fallback", res.Value)
	assert.ErrorIs(t, seen, task.ErrExecution)
}

func TestRecover_LeavesSuccessAlone(t *testing.T) {
	res := dryRun(t, task.Recover(task.Pure(1), func(error) task.Task[int] { return task.Pure(2) }))
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Value)
}

func TestMapError_TransformsOnlyErrors(t *testing.T) {
	custom := errors.New("custom")
	failing := task.MapError(task.Fail[int](errors.New("boom")), func(error) error { return custom })
	res := dryRun(t, failing)
	assert.ErrorIs(t, res.Err, custom)
	assert.ErrorIs(t, res.Err, task.ErrFailure)

	ok := dryRun(t, task.MapError(task.Pure(3), func(error) error { return custom }))
	require.NoError(t, ok.Err)
	assert.Equal(t, 3, ok.Value)
}

func TestMapError_KeepsWrappingMessage(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("while scaffolding: %w", err) }
	res := dryRun(t, task.MapError(task.FailWith[int](task.KindTimeout, "orig"), wrap))

	require.Error(t, res.Err)
	assert.Equal(t, "timeout: while scaffolding: timeout: orig", res.Err.Error())
	assert.ErrorIs(t, res.Err, task.ErrTimeout)

	var te *task.TaskError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, task.KindTimeout, te.Kind)
}

func TestFail_WrapsForeignErrors(t *testing.T) {
	cause := errors.New("boom")
	res := dryRun(t, task.Fail[string](cause))

	var te *task.TaskError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, task.KindFailure, te.Kind)
	assert.ErrorIs(t, res.Err, cause)

	nilErr := dryRun(t, task.Fail[string](nil))
	assert.ErrorIs(t, nilErr.Err, task.ErrFailure)
}

func TestFailWith_UsesGivenKind(t *testing.T) {
	res := dryRun(t, task.FailWith[int](task.KindTimeout, "took %d seconds", 3))
	assert.ErrorIs(t, res.Err, task.ErrTimeout)
	assert.Contains(t, res.Err.Error(), "took 3 seconds")
}

func TestPerform_WrongResultTypeFails(t *testing.T) {
	res := dryRun(t, task.ReadFile("a.txt"),
		interpreter.MockEffect(interpreter.MatchKind(effects.KindReadFile), interpreter.Returns(42)),
	)
	assert.ErrorIs(t, res.Err, task.ErrExecution)
	assert.ErrorIs(t, res.Err, helper.ErrUnexpectedType)
}

func TestContinuationPanic_FailsTheRun(t *testing.T) {
	res := dryRun(t, task.FlatMap(task.Pure(1), func(int) task.Task[int] {
		return task.Map(task.Info("before"), func(task.Unit) int { panic("boom") })
	}))
	assert.ErrorIs(t, res.Err, task.ErrPanic)
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestContinuationPanic_IsRecoverable(t *testing.T) {
	panicking := task.Map(task.Info("before"), func(task.Unit) int { panic("boom") })
	res := dryRun(t, task.Recover(panicking, func(err error) task.Task[int] {
		if errors.Is(err, task.ErrPanic) {
			return task.Pure(-1)
		}
		return task.Fail[int](err)
	}))

	require.NoError(t, res.Err)
	assert.Equal(t, -1, res.Value)
}

func TestFromEffect_PassesResultThrough(t *testing.T) {
	res := dryRun(t, task.FromEffect(effects.Exists{Path: "a.txt"}), seed(map[string]string{"a.txt": ""}))
	require.NoError(t, res.Err)
	assert.Equal(t, true, res.Value)
}

func TestVoidAndAs(t *testing.T) {
	res := dryRun(t, task.As(task.Void(task.Pure(5)), "done"))
	require.NoError(t, res.Err)
	assert.Equal(t, "done", res.Value)
}
