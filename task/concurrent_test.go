package task_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/task"
)

func TestParallel_PreservesInputOrder(t *testing.T) {
	res := dryRun(t, task.Parallel([]task.Task[int]{
		task.Delay(30*time.Millisecond, 1),
		task.Delay(5*time.Millisecond, 2),
		task.Delay(15*time.Millisecond, 3),
	}))

	require.NoError(t, res.Err)
	assert.Equal(t, []int{1, 2, 3}, res.Value)
	assert.Equal(t, 1, interpreter.CountEffects(res.Log, effects.KindParallel))
	assert.Equal(t, 3, interpreter.CountEffects(res.Log, effects.KindSleep))
}

func TestParallel_EmptyPerformsNothing(t *testing.T) {
	res := dryRun(t, task.Parallel[int](nil))
	require.NoError(t, res.Err)
	assert.Equal(t, []int{}, res.Value)
	assert.Zero(t, res.Log.Len())
}

func TestParallel_FailsFastWithIndex(t *testing.T) {
	boom := errors.New("boom")
	start := time.Now()
	res := dryRun(t, task.Parallel([]task.Task[int]{
		task.Delay(time.Second, 1),
		task.FlatMap(task.Sleep(5*time.Millisecond), func(task.Unit) task.Task[int] { return task.Fail[int](boom) }),
		task.Delay(time.Second, 3),
	}))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.ErrorIs(t, res.Err, task.ErrParallel)
	assert.ErrorIs(t, res.Err, boom)

	var te *task.TaskError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, 1, te.Index)
}

func TestParallelN_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	slowRead := func(ctx context.Context, e effects.Effect) (any, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		select {
		case <-time.After(20 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return "content of " + e.(effects.ReadFile).Path, nil
	}

	tasks := make([]task.Task[string], 6)
	want := make([]string, 6)
	for i := range tasks {
		p := fmt.Sprintf("f%d.txt", i)
		tasks[i] = task.ReadFile(p)
		want[i] = "content of " + p
	}

	res := dryRun(t, task.ParallelN(2, tasks),
		interpreter.MockEffect(interpreter.MatchKind(effects.KindReadFile), slowRead),
	)

	require.NoError(t, res.Err)
	assert.Equal(t, want, res.Value)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestRace_FastestWins(t *testing.T) {
	res := dryRun(t, task.Race([]task.Task[string]{
		task.Delay(200*time.Millisecond, "slow"),
		task.Delay(5*time.Millisecond, "fast"),
	}))
	require.NoError(t, res.Err)
	assert.Equal(t, "fast", res.Value)
}

func TestRace_FirstFailureWins(t *testing.T) {
	boom := errors.New("boom")
	res := dryRun(t, task.Race([]task.Task[string]{
		task.Delay(200*time.Millisecond, "slow"),
		task.FlatMap(task.Sleep(5*time.Millisecond), func(task.Unit) task.Task[string] { return task.Fail[string](boom) }),
	}))
	assert.ErrorIs(t, res.Err, boom)
}

func TestZip_PairsResults(t *testing.T) {
	res := dryRun(t, task.Zip(task.Pure(1), task.ReadFile("a.txt")), seed(map[string]string{"a.txt": "A"}))
	require.NoError(t, res.Err)
	assert.Equal(t, task.Pair[int, string]{First: 1, Second: "A"}, res.Value)
}

func TestZip3_GathersResults(t *testing.T) {
	res := dryRun(t, task.Zip3(task.Pure(1), task.Delay(5*time.Millisecond, "two"), task.Exists("nope")))
	require.NoError(t, res.Err)
	assert.Equal(t, task.Triple[int, string, bool]{First: 1, Second: "two", Third: false}, res.Value)
}

func TestZip_FailureIsParallelError(t *testing.T) {
	res := dryRun(t, task.Zip(task.Pure(1), task.ReadFile("missing.txt")))
	assert.ErrorIs(t, res.Err, task.ErrParallel)

	e, ok := task.RootEffect(res.Err)
	require.True(t, ok)
	assert.Equal(t, effects.KindReadFile, e.Kind())
}
