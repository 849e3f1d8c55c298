// Package interpreter runs task trees.
//
// Production performs effects against the real filesystem, starts real
// processes and asks a Prompter. DryRunner simulates the same effects on an
// in-memory filesystem and records them, so a generator can be previewed
// and tested without side effects. Both share one engine: Parallel and Race
// are interpreted with goroutines, a panic in a continuation fails the run
// instead of crashing it, and every interpreter runs a single task.
package interpreter
