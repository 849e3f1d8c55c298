package task_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/task"
)

func TestSequence_RunsInOrder(t *testing.T) {
	tasks := []task.Task[string]{
		task.As(task.WriteFile("a.txt", "1"), "a"),
		task.As(task.WriteFile("b.txt", "2"), "b"),
		task.As(task.WriteFile("c.txt", "3"), "c"),
	}
	res := dryRun(t, task.Sequence(tasks))

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Value)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, paths(interpreter.GetFileWrites(res.Log)))
}

func TestSequence_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	tasks := []task.Task[task.Unit]{
		task.WriteFile("a.txt", "1"),
		task.Fail[task.Unit](boom),
		task.WriteFile("c.txt", "3"),
	}
	res := dryRun(t, task.Sequence_(tasks))

	assert.ErrorIs(t, res.Err, boom)
	require.NoError(t, interpreter.AssertEffects(res.Log, effects.KindWriteFile))
	assert.NotContains(t, res.Files, "c.txt")
}

func TestSequence_EmptyYieldsEmptySlice(t *testing.T) {
	res := dryRun(t, task.Sequence[int](nil))
	require.NoError(t, res.Err)
	assert.NotNil(t, res.Value)
	assert.Empty(t, res.Value)
}

func TestTraverse_CallsFOnlyAfterEarlierSuccess(t *testing.T) {
	var visited []string
	res := dryRun(t, task.Traverse([]string{"a.txt", "missing.txt", "c.txt"}, func(p string) task.Task[string] {
		visited = append(visited, p)
		return task.ReadFile(p)
	}), seed(map[string]string{"a.txt": "A", "c.txt": "C"}))

	assert.ErrorIs(t, res.Err, task.ErrExecution)
	assert.Equal(t, []string{"a.txt", "missing.txt"}, visited)
}

func TestTraverse_CollectsResults(t *testing.T) {
	res := dryRun(t, task.Traverse([]int{1, 2, 3}, func(n int) task.Task[string] {
		p := fmt.Sprintf("f%d.txt", n)
		return task.As(task.WriteFile(p, fmt.Sprint(n*n)), p)
	}))

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"f1.txt", "f2.txt", "f3.txt"}, res.Value)
	assert.Equal(t, "9", res.Files["f3.txt"])
}

func TestTraverse_RerunsDoNotShareResults(t *testing.T) {
	tk := task.Traverse([]string{"a.txt", "b.txt"}, task.ReadFile)

	first := dryRun(t, tk, seed(map[string]string{"a.txt": "1", "b.txt": "2"}))
	second := dryRun(t, tk, seed(map[string]string{"a.txt": "x", "b.txt": "y"}))

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, []string{"1", "2"}, first.Value)
	assert.Equal(t, []string{"x", "y"}, second.Value)
}

func TestTraverse_DiscardingVariant(t *testing.T) {
	res := dryRun(t, task.Traverse_([]string{"x", "y"}, func(s string) task.Task[task.Unit] {
		return task.AppendFile("out.txt", s)
	}))
	require.NoError(t, res.Err)
	assert.Equal(t, "xy", res.Files["out.txt"])
}

func paths(writes []interpreter.FileWrite) []string {
	out := make([]string, len(writes))
	for i, w := range writes {
		out[i] = w.Path
	}
	return out
}
