package interpreter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/effects/log"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// DryRunner interprets a task against an in-memory filesystem, recording
// every effect instead of touching the outside world.
//
// Reads see earlier writes of the same run. Processes are not started;
// each exec succeeds with an empty result. Prompts take their default
// unless a Prompter is configured. Mocks registered with MockEffect take
// precedence over all of this.
//
// A DryRunner runs exactly one task.
type DryRunner struct {
	lifecycle
	settings settings
	store    *contextStore
	mocks    *mockSet
	log      *Log
	fs       *virtualFS
	fsErr    error
}

// DryRunResult is the outcome of a dry run.
type DryRunResult[A any] struct {
	Value A
	Err   error
	Log   *Log
	// Files is the virtual filesystem as the run left it, path to content.
	Files map[string]string
	// Digests holds the xxhash of every file in Files.
	Digests map[string]uint64
	Context map[string]any
	Report  Report
}

// Ok reports whether the task succeeded.
func (r DryRunResult[A]) Ok() bool { return r.Err == nil }

// NewDryRun creates a dry-run interpreter.
func NewDryRun(opts ...Option) *DryRunner {
	d := &DryRunner{settings: newSettings(opts)}
	d.init()
	d.store = newContextStore(d.settings.initialContext)
	d.mocks = newMockSet(d.settings.mocks)
	d.log = newLog()
	d.fs, d.fsErr = newVirtualFS(d.settings.seedFiles)
	return d
}

// Log returns the effects recorded so far.
func (d *DryRunner) Log() *Log {
	return d.log
}

// RunDry interprets t with d.
func RunDry[A any](ctx context.Context, d *DryRunner, t task.Task[A]) DryRunResult[A] {
	if err := d.start(); err != nil {
		return DryRunResult[A]{Err: err, Log: d.log, Report: d.Report()}
	}

	var (
		v   any
		err error
	)
	logger := d.settings.logger.With(zap.String("run", d.runID), zap.Bool("dry_run", true))
	if d.fsErr != nil {
		err = fmt.Errorf("preparing virtual filesystem: %w", d.fsErr)
	} else {
		h := &dryHandler{settings: d.settings, store: d.store, mocks: d.mocks, log: d.log, fs: d.fs, logger: logger}
		en := &engine{
			handler: h,
			logger:  logger,
			runID:   d.runID,
			onStructural: func(e effects.Effect) {
				d.log.append(e)
			},
		}
		v, err = en.run(ctx, t.Node())
	}
	d.finish(err)

	res := DryRunResult[A]{Err: err, Log: d.log, Context: d.store.snapshot(), Report: d.Report()}
	if d.fs != nil {
		res.Files, res.Digests = d.fs.files()
	}
	if err == nil {
		res.Value, res.Err = castResult[A](v)
	}
	logger.Debug("dry run settled",
		zap.Int("effects", d.log.Len()),
		zap.Stringer("state", res.Report.State),
		zap.Error(res.Err),
	)
	return res
}

// DryRun interprets t with a fresh dry-run interpreter.
func DryRun[A any](ctx context.Context, t task.Task[A]) DryRunResult[A] {
	return DryRunWith(ctx, t)
}

// DryRunWith interprets t with a fresh dry-run interpreter configured by opts.
func DryRunWith[A any](ctx context.Context, t task.Task[A], opts ...Option) DryRunResult[A] {
	return RunDry(ctx, NewDryRun(opts...), t)
}

type dryHandler struct {
	settings settings
	store    *contextStore
	mocks    *mockSet
	log      *Log
	fs       *virtualFS
	logger   *zap.Logger
}

func (h *dryHandler) handle(ctx context.Context, e effects.Effect) (any, error) {
	seq := h.log.append(e)
	if respond, ok := h.mocks.match(e); ok {
		v, err := respond(ctx, e)
		h.log.settle(seq, func(r *Record) {
			r.Mocked = true
			r.Err = err
		})
		return v, err
	}

	s := h.simulate(ctx, e)
	h.log.settle(seq, func(r *Record) {
		r.Touched = s.touched
		r.Removed = s.removed
		r.Err = s.err
	})
	return s.value, s.err
}

type simulation struct {
	value   any
	touched []string
	removed []string
	err     error
}

func failed(err error) simulation {
	return simulation{err: err}
}

func (h *dryHandler) simulate(ctx context.Context, e effects.Effect) simulation {
	switch e := e.(type) {
	case effects.ReadFile:
		content, err := h.fs.read(e.Path)
		if err != nil {
			return failed(err)
		}
		return simulation{value: content}
	case effects.WriteFile:
		if err := h.fs.write(e.Path, e.Content, false); err != nil {
			return failed(err)
		}
		return simulation{touched: []string{cleanPath(e.Path)}}
	case effects.AppendFile:
		if err := h.fs.write(e.Path, e.Content, true); err != nil {
			return failed(err)
		}
		return simulation{touched: []string{cleanPath(e.Path)}}
	case effects.Exists:
		ok, err := h.fs.exists(e.Path)
		if err != nil {
			return failed(err)
		}
		return simulation{value: ok}
	case effects.Glob:
		matches, err := h.fs.glob(e.Pattern, e.Cwd)
		if err != nil {
			return failed(err)
		}
		return simulation{value: matches}
	case effects.CopyFile:
		if err := h.fs.copyFile(e.Src, e.Dest); err != nil {
			return failed(err)
		}
		return simulation{touched: []string{cleanPath(e.Dest)}}
	case effects.CopyDirectory:
		written, err := h.fs.copyDirectory(e.Src, e.Dest)
		if err != nil {
			return failed(err)
		}
		return simulation{touched: written}
	case effects.DeleteFile:
		removed, err := h.fs.deleteFile(e.Path)
		if err != nil || !removed {
			return simulation{err: err}
		}
		return simulation{removed: []string{cleanPath(e.Path)}}
	case effects.DeleteDirectory:
		removed, err := h.fs.deleteDirectory(e.Path)
		if err != nil {
			return failed(err)
		}
		return simulation{removed: removed}
	case effects.MakeDir:
		return simulation{err: h.fs.mkdir(e.Path)}
	case effects.Exec:
		return simulation{value: effects.ExecResult{}}
	case effects.Prompt:
		if h.settings.prompter == nil {
			return simulation{value: defaultAnswer(e)}
		}
		v, err := h.settings.prompter.Prompt(ctx, e)
		return simulation{value: v, err: err}
	case effects.Log:
		log.Emit(h.logger, e.Level, e.Message, nil)
		return simulation{}
	case effects.ReadContext:
		v, ok := h.store.get(e.Key)
		return simulation{value: effects.ContextValue{Value: v, Present: ok}}
	case effects.WriteContext:
		if e.Delete {
			h.store.delete(e.Key)
		} else {
			h.store.set(e.Key, e.Value)
		}
		return simulation{}
	case effects.Sleep:
		if h.settings.skipSleeps {
			return simulation{}
		}
		return simulation{err: sleep(ctx, e.Duration)}
	case effects.Parallel, effects.Race:
		return failed(fmt.Errorf("%s must be interpreted by the engine", e.Kind()))
	default:
		panic(fmt.Sprintf("unrecognized effect: %T", e))
	}
}
