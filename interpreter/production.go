package interpreter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/effects/log"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// Production performs effects for real: it touches the filesystem, runs
// processes and asks the user.
//
// A Production runs exactly one task. Create a new one per run.
type Production struct {
	lifecycle
	settings settings
	store    *contextStore
}

// NewProduction creates a production interpreter.
func NewProduction(opts ...Option) *Production {
	p := &Production{settings: newSettings(opts)}
	p.init()
	p.store = newContextStore(p.settings.initialContext)
	return p
}

// Context returns a copy of the generator context as it stands.
func (p *Production) Context() map[string]any {
	return p.store.snapshot()
}

// RunTask interprets t with p.
func RunTask[A any](ctx context.Context, p *Production, t task.Task[A]) (A, error) {
	var zero A
	if err := p.start(); err != nil {
		return zero, err
	}

	logger := p.settings.logger.With(zap.String("run", p.runID))
	logger.Debug("run started", zap.String("base_dir", p.settings.baseDir))

	en := &engine{
		handler: &productionHandler{settings: p.settings, store: p.store, logger: logger},
		logger:  logger,
		runID:   p.runID,
	}
	v, err := en.run(ctx, t.Node())
	p.finish(err)

	report := p.Report()
	logger.Debug("run settled",
		zap.Stringer("state", report.State),
		zap.Duration("elapsed", report.Span.Duration()),
		zap.Error(err),
	)
	if err != nil {
		return zero, err
	}
	a, castErr := castResult[A](v)
	if castErr != nil {
		return zero, castErr
	}
	return a, nil
}

// Run interprets t with a fresh production interpreter.
func Run[A any](ctx context.Context, t task.Task[A], opts ...Option) (A, error) {
	return RunTask(ctx, NewProduction(opts...), t)
}

type productionHandler struct {
	settings settings
	store    *contextStore
	logger   *zap.Logger
}

func (h *productionHandler) resolve(p string) string {
	if p == "" {
		p = "."
	}
	if filepath.IsAbs(p) || h.settings.baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(h.settings.baseDir, p)
}

func (h *productionHandler) handle(ctx context.Context, e effects.Effect) (any, error) {
	switch e := e.(type) {
	case effects.ReadFile:
		b, err := os.ReadFile(h.resolve(e.Path))
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case effects.WriteFile:
		return nil, writeFile(h.resolve(e.Path), []byte(e.Content), 0o644)
	case effects.AppendFile:
		return nil, appendFile(h.resolve(e.Path), e.Content)
	case effects.Exists:
		_, err := os.Stat(h.resolve(e.Path))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return nil, err
		}
	case effects.Glob:
		return h.glob(e)
	case effects.CopyFile:
		return nil, copyFile(h.resolve(e.Src), h.resolve(e.Dest))
	case effects.CopyDirectory:
		return nil, h.copyDirectory(ctx, h.resolve(e.Src), h.resolve(e.Dest))
	case effects.DeleteFile:
		return nil, deleteFile(h.resolve(e.Path))
	case effects.DeleteDirectory:
		return nil, os.RemoveAll(h.resolve(e.Path))
	case effects.MakeDir:
		return nil, os.MkdirAll(h.resolve(e.Path), 0o755)
	case effects.Exec:
		return h.exec(ctx, e)
	case effects.Prompt:
		if h.settings.prompter == nil {
			return defaultAnswer(e), nil
		}
		return h.settings.prompter.Prompt(ctx, e)
	case effects.Log:
		log.Emit(h.logger, e.Level, e.Message, nil)
		return nil, nil
	case effects.ReadContext:
		v, ok := h.store.get(e.Key)
		return effects.ContextValue{Value: v, Present: ok}, nil
	case effects.WriteContext:
		if e.Delete {
			h.store.delete(e.Key)
		} else {
			h.store.set(e.Key, e.Value)
		}
		return nil, nil
	case effects.Sleep:
		return nil, sleep(ctx, e.Duration)
	case effects.Parallel, effects.Race:
		return nil, fmt.Errorf("%s must be interpreted by the engine", e.Kind())
	default:
		panic(fmt.Sprintf("unrecognized effect: %T", e))
	}
}

// glob matches files only, and returns paths relative to the search
// directory with forward slashes, sorted.
func (h *productionHandler) glob(e effects.Glob) ([]string, error) {
	if filepath.IsAbs(e.Pattern) {
		matches, err := doublestar.FilepathGlob(e.Pattern, doublestar.WithFilesOnly())
		return sortedMatches(matches, err)
	}
	root := h.resolve(e.Cwd)
	return sortedMatches(doublestar.Glob(os.DirFS(root), filepath.ToSlash(e.Pattern), doublestar.WithFilesOnly()))
}

func sortedMatches(matches []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	if matches == nil {
		return []string{}, nil
	}
	slices.Sort(matches)
	return matches, nil
}

func (h *productionHandler) copyDirectory(ctx context.Context, src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	var files []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dest, rel), 0o755)
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.settings.copyConcurrency)
	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return copyFile(filepath.Join(src, rel), filepath.Join(dest, rel))
		})
	}
	return g.Wait()
}

func (h *productionHandler) exec(ctx context.Context, e effects.Exec) (any, error) {
	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Dir = h.resolve(e.Cwd)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := effects.ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = fmt.Errorf("%s exited with code %d", e.Command, result.ExitCode)
	}
	return nil, task.NewExecutionError(e, err).
		WithContext("stdout", result.Stdout).
		WithContext("stderr", result.Stderr).
		WithContext("exit_code", result.ExitCode)
}

func writeFile(path string, content []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, perm)
}

func appendFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFile(dest, content, info.Mode().Perm())
}

// deleteFile removes a regular file. A missing file is not an error.
func deleteFile(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return os.Remove(path)
}
