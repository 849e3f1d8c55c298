// Package task builds generator programs as values.
//
// A Task[A] describes the effects a program performs and how their results
// flow into one another; nothing happens until an interpreter runs it. The
// same task can be executed for real or dry-run for a preview, which is what
// lets generators be tested without touching the disk.
//
// Combinators are package functions rather than methods because Go methods
// cannot introduce type parameters:
//
//	t := task.FlatMap(task.ReadFile("go.mod"), func(mod string) task.Task[task.Unit] {
//		return task.WriteFile("go.mod.bak", mod)
//	})
package task
