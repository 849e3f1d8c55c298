package task

import (
	"strings"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// ExecOptions tunes an Exec task.
type ExecOptions struct {
	Cwd string
	// Env entries are "KEY=value" pairs added to the inherited environment.
	Env []string
}

// Exec runs command with args. A non-zero exit fails the task with an
// execution error whose context carries the captured output.
func Exec(command string, args []string, opts ExecOptions) Task[effects.ExecResult] {
	if t, ok := validated[effects.ExecResult]("exec", requireNonEmpty("command", command)); !ok {
		return t
	}
	return perform[effects.ExecResult](effects.Exec{
		Command: command,
		Args:    append([]string(nil), args...),
		Cwd:     opts.Cwd,
		Env:     append([]string(nil), opts.Env...),
	})
}

// ExecSimple runs a command line through sh and returns its trimmed stdout.
func ExecSimple(commandLine string) Task[string] {
	if t, ok := validated[string]("execSimple", requireNonEmpty("commandLine", commandLine)); !ok {
		return t
	}
	return Map(Exec("sh", []string{"-c", commandLine}, ExecOptions{}), func(r effects.ExecResult) string {
		return strings.TrimSpace(r.Stdout)
	})
}
