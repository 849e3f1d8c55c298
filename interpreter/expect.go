package interpreter

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// Expectation describes what a task should do when dry-run.
// Build one with ExpectTask and check it with Verify.
type Expectation[A any] struct {
	task   task.Task[A]
	opts   []Option
	checks []func(DryRunResult[A]) error
}

// ExpectTask starts an expectation about t.
func ExpectTask[A any](t task.Task[A]) *Expectation[A] {
	return &Expectation[A]{task: t}
}

// WithOptions configures the dry run the expectation is verified with.
func (x *Expectation[A]) WithOptions(opts ...Option) *Expectation[A] {
	x.opts = append(x.opts, opts...)
	return x
}

// ToSucceed expects the task to succeed.
func (x *Expectation[A]) ToSucceed() *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		if r.Err != nil {
			return fmt.Errorf("expected success, got %w", r.Err)
		}
		return nil
	})
}

// ToSucceedWith expects the task to succeed with want.
func (x *Expectation[A]) ToSucceedWith(want A) *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		if r.Err != nil {
			return fmt.Errorf("expected success, got %w", r.Err)
		}
		if diff := cmp.Diff(want, r.Value); diff != "" {
			return fmt.Errorf("result mismatch (-want +got):\n%s", diff)
		}
		return nil
	})
}

// ToFail expects the task to fail.
func (x *Expectation[A]) ToFail() *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		if r.Err == nil {
			return fmt.Errorf("expected failure, task succeeded with %v", r.Value)
		}
		return nil
	})
}

// ToFailWith expects the task to fail with an error matching target by errors.Is.
func (x *Expectation[A]) ToFailWith(target error) *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		if r.Err == nil {
			return fmt.Errorf("expected failure matching %q, task succeeded with %v", target, r.Value)
		}
		if !errors.Is(r.Err, target) {
			return fmt.Errorf("expected failure matching %q, got %w", target, r.Err)
		}
		return nil
	})
}

// ToPerform expects the task to dispatch exactly the given kinds, in order.
func (x *Expectation[A]) ToPerform(kinds ...effects.Kind) *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		return AssertEffects(r.Log, kinds...)
	})
}

// ToWriteFile expects path to hold content once the task has settled.
func (x *Expectation[A]) ToWriteFile(path, content string) *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		p := cleanPath(path)
		if !slices.Contains(GetAffectedFiles(r.Log), p) {
			return fmt.Errorf("expected %s to be written", p)
		}
		if got := r.Files[p]; got != content {
			return fmt.Errorf("content of %s mismatch (-want +got):\n%s", p, cmp.Diff(content, got))
		}
		return nil
	})
}

// ToWriteNothing expects the task to leave every file as it found it.
func (x *Expectation[A]) ToWriteNothing() *Expectation[A] {
	return x.check(func(r DryRunResult[A]) error {
		if affected := GetAffectedFiles(r.Log); len(affected) > 0 {
			return fmt.Errorf("expected no writes, got %v", affected)
		}
		if removed := GetRemovedFiles(r.Log); len(removed) > 0 {
			return fmt.Errorf("expected no deletions, got %v", removed)
		}
		return nil
	})
}

func (x *Expectation[A]) check(c func(DryRunResult[A]) error) *Expectation[A] {
	x.checks = append(x.checks, c)
	return x
}

// Run dry-runs the task without checking anything.
func (x *Expectation[A]) Run(ctx context.Context) DryRunResult[A] {
	return DryRunWith(ctx, x.task, x.opts...)
}

// Verify dry-runs the task and reports every unmet expectation.
func (x *Expectation[A]) Verify(ctx context.Context) error {
	res := x.Run(ctx)
	var err error
	for _, c := range x.checks {
		err = multierr.Append(err, c(res))
	}
	return err
}
