package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/task"
)

func assertInvalid[A any](t *testing.T, tk task.Task[A], primitive string) {
	t.Helper()
	assert.Nil(t, tk.PendingEffect(), "validation must fail before any effect")

	res := dryRun(t, tk)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, task.ErrValidation)
	assert.Zero(t, res.Log.Len())

	var te *task.TaskError
	require.ErrorAs(t, res.Err, &te)
	assert.Equal(t, primitive, te.Context["primitive"])
}

func TestFilePrimitives_RejectMalformedPaths(t *testing.T) {
	cases := map[string]struct {
		task      task.Task[task.Unit]
		primitive string
	}{
		"write empty path":   {task.WriteFile("", "x"), "writeFile"},
		"write NUL in path":  {task.WriteFile("a\x00b", "x"), "writeFile"},
		"append blank path":  {task.AppendFile("   ", "x"), "appendFile"},
		"mkdir empty":        {task.Mkdir(""), "mkdir"},
		"copy empty dest":    {task.CopyFile("a", ""), "copyFile"},
		"copy dir empty src": {task.CopyDirectory("", "b"), "copyDirectory"},
		"delete file":        {task.DeleteFile(""), "deleteFile"},
		"delete directory":   {task.DeleteDirectory(""), "deleteDirectory"},
		"sort lines":         {task.SortFileLines(""), "sortFileLines"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assertInvalid(t, tc.task, tc.primitive)
		})
	}

	assertInvalid(t, task.ReadFile(""), "readFile")
	assertInvalid(t, task.Exists(""), "exists")
	assertInvalid(t, task.Glob("", "src"), "glob")
}

func TestValidation_ReportsEveryProblem(t *testing.T) {
	res := dryRun(t, task.CopyFile("", ""))
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "src must not be empty")
	assert.Contains(t, res.Err.Error(), "dest must not be empty")
}

func TestPromptPrimitives_RejectMalformedOptions(t *testing.T) {
	assertInvalid(t, task.PromptText("", "Name?", ""), "promptText")
	assertInvalid(t, task.PromptConfirm("ok", "", false), "promptConfirm")
	assertInvalid(t, task.PromptSelect("db", "Database?", nil, ""), "promptSelect")
	assertInvalid(t, task.PromptSelect("db", "Database?", []string{"pg", "pg"}, ""), "promptSelect")
	assertInvalid(t, task.PromptSelect("db", "Database?", []string{"pg", "mysql"}, "sqlite"), "promptSelect")
	assertInvalid(t, task.PromptMultiselect("f", "Features?", []string{"a"}, []string{"b"}), "promptMultiselect")
}

func TestControlPrimitives_RejectMalformedArguments(t *testing.T) {
	assertInvalid(t, task.Sleep(-time.Second), "sleep")
	assertInvalid(t, task.Timeout(task.Pure(1), -time.Second), "timeout")
	assertInvalid(t, task.Retry(task.Pure(1), -1), "retry")
	assertInvalid(t, task.RetryWithBackoff(task.Pure(1), 1, -time.Second), "retryWithBackoff")
	assertInvalid(t, task.ParallelN(0, []task.Task[int]{task.Pure(1)}), "parallelN")
	assertInvalid(t, task.Race[int](nil), "race")
	assertInvalid(t, task.Exec("", nil, task.ExecOptions{}), "exec")
	assertInvalid(t, task.ExecSimple(" "), "execSimple")
	assertInvalid(t, task.Log("verbose", "hi"), "log")
	assertInvalid(t, task.SetContext("", 1), "setContext")
	assertInvalid(t, task.DeleteContext(""), "deleteContext")
	assertInvalid(t, task.GetContext[string](""), "getContext")
	assertInvalid(t, task.WithContext("", 1, task.Pure(1)), "withContext")
}
