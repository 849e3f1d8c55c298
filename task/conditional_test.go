package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/task"
)

func TestWhenUnless(t *testing.T) {
	write := task.WriteFile("flag.txt", "on")

	assert.Equal(t, 1, interpreter.CountEffects(dryRun(t, task.When(true, write)).Log, effects.KindWriteFile))
	assert.Zero(t, dryRun(t, task.When(false, write)).Log.Len())
	assert.Zero(t, dryRun(t, task.Unless(true, write)).Log.Len())
	assert.Equal(t, 1, interpreter.CountEffects(dryRun(t, task.Unless(false, write)).Log, effects.KindWriteFile))
}

func TestIfElseM_BranchesOnTaskResult(t *testing.T) {
	tk := task.IfElseM(task.Exists("go.mod"), task.Pure("go"), task.Pure("unknown"))

	withMod := dryRun(t, tk, seed(map[string]string{"go.mod": "module x"}))
	require.NoError(t, withMod.Err)
	assert.Equal(t, "go", withMod.Value)

	without := dryRun(t, tk)
	require.NoError(t, without.Err)
	assert.Equal(t, "unknown", without.Value)
}

func TestWhenM_UnlessM(t *testing.T) {
	ensureReadme := task.UnlessM(task.Exists("README.md"), task.WriteFile("README.md", "# demo\n"))

	fresh := dryRun(t, ensureReadme)
	require.NoError(t, fresh.Err)
	assert.Equal(t, "# demo\n", fresh.Files["README.md"])

	existing := dryRun(t, ensureReadme, seed(map[string]string{"README.md": "keep"}))
	require.NoError(t, existing.Err)
	assert.Equal(t, "keep", existing.Files["README.md"])

	cleanup := task.WhenM(task.Exists("tmp.txt"), task.DeleteFile("tmp.txt"))
	res := dryRun(t, cleanup, seed(map[string]string{"tmp.txt": ""}))
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Files, "tmp.txt")
}
