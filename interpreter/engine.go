package interpreter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/internal/free"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// handler performs, or simulates, leaf effects.
// Parallel and Race never reach a handler; the engine interprets them itself.
type handler interface {
	handle(ctx context.Context, e effects.Effect) (any, error)
}

// engine walks a task tree, feeding each effect's outcome to its continuation.
type engine struct {
	handler handler
	logger  *zap.Logger
	runID   string

	// onStructural observes Parallel and Race effects before they are interpreted.
	onStructural func(effects.Effect)
}

// run interprets n under a context cancelled once n settles. Parallel
// siblings and race losers still in flight at that point see the
// cancellation; until then they are never interrupted.
func (en *engine) run(ctx context.Context, n free.Node) (any, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return en.eval(ctx, n)
}

func (en *engine) eval(ctx context.Context, n free.Node) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			en.logger.Error("panic while interpreting task", zap.String("run", en.runID), zap.Any("panic", r))
			value, err = nil, task.NewPanicError(r)
		}
	}()

	for {
		switch cur := n.(type) {
		case free.Pure:
			return cur.Value, nil
		case free.Fail:
			return nil, cur.Err
		case free.Suspend:
			n = cur.Resume(en.perform(ctx, cur.Effect))
		default:
			// Node is sealed, reaching here is a bug.
			panic(fmt.Errorf("unrecognized task node: %T", n))
		}
	}
}

func (en *engine) perform(ctx context.Context, e effects.Effect) (any, error) {
	en.logger.Debug("dispatching effect",
		zap.String("run", en.runID),
		zap.String("kind", string(e.Kind())),
		zap.String("effect", effects.Describe(e)),
	)

	switch e := e.(type) {
	case effects.Parallel:
		en.observeStructural(e)
		return en.parallel(ctx, e)
	case effects.Race:
		en.observeStructural(e)
		return en.race(ctx, e)
	}

	if err := ctx.Err(); err != nil {
		return nil, task.NewExecutionError(e, err)
	}
	v, err := en.handler.handle(ctx, e)
	if err != nil {
		return nil, wrapEffectError(e, err)
	}
	return v, nil
}

func (en *engine) observeStructural(e effects.Effect) {
	if en.onStructural != nil {
		en.onStructural(e)
	}
}

// outcome is the settled result of one sub-task.
type outcome struct {
	index int
	value any
	err   error
}

// parallel interprets every sub-task concurrently, at most Limit at a time,
// and returns their results in input order. The first failure settles the
// effect immediately; running siblings are left to finish on their own and
// no further sibling is started.
func (en *engine) parallel(ctx context.Context, e effects.Parallel) (any, error) {
	n := len(e.Tasks)
	results := make([]any, n)
	if n == 0 {
		return results, nil
	}

	limit := e.Limit
	if limit <= 0 || limit > n {
		limit = n
	}
	sem := semaphore.NewWeighted(int64(limit))
	done := make(chan outcome, n)
	stop := make(chan struct{})

	go func() {
		for i, p := range e.Tasks {
			if err := sem.Acquire(ctx, 1); err != nil {
				done <- outcome{index: i, err: err}
				return
			}
			select {
			case <-stop:
				sem.Release(1)
				return
			default:
			}
			en.spawn(ctx, i, p, done, func() { sem.Release(1) })
		}
	}()

	for range n {
		o := <-done
		if o.err != nil {
			close(stop)
			return nil, task.NewParallelError(o.index, o.err)
		}
		results[o.index] = o.value
	}
	return results, nil
}

// race settles with the first sub-task to settle. Losers keep running.
func (en *engine) race(ctx context.Context, e effects.Race) (any, error) {
	if len(e.Tasks) == 0 {
		return nil, task.NewValidationError("race", errors.New("at least one task is required"))
	}
	done := make(chan outcome, len(e.Tasks))
	for i, p := range e.Tasks {
		en.spawn(ctx, i, p, done, nil)
	}
	winner := <-done
	en.logger.Debug("race settled",
		zap.String("run", en.runID),
		zap.Int("winner", winner.index),
		zap.Bool("failed", winner.err != nil),
	)
	return winner.value, winner.err
}

// spawn interprets p in its own goroutine and reports on done.
// done must have room for every spawned sub-task so that late finishers never block.
func (en *engine) spawn(ctx context.Context, index int, p effects.Program, done chan<- outcome, release func()) {
	ready := make(chan struct{})
	go func() {
		if release != nil {
			defer release()
		}
		close(ready)

		n, ok := p.(free.Node)
		if !ok {
			done <- outcome{index: index, err: fmt.Errorf("unsupported program type %T", p)}
			return
		}
		v, err := en.eval(ctx, n)
		done <- outcome{index: index, value: v, err: err}
	}()
	<-ready
}

// wrapEffectError turns a handler failure into an execution error of e.
// TaskErrors raised by the handler already carry their own classification.
func wrapEffectError(e effects.Effect, err error) error {
	if te, ok := err.(*task.TaskError); ok {
		return te
	}
	return task.NewExecutionError(e, err)
}

// castResult converts the value a run settled with into the task's result type.
func castResult[A any](v any) (A, error) {
	a, err := helper.Cast[A](v)
	if err != nil {
		return a, task.NewError(task.KindExecution, "task settled with a value of the wrong type", err)
	}
	return a, nil
}


// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
