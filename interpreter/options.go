package interpreter

import (
	"maps"
	"sync"

	"go.uber.org/zap"
)

const defaultCopyConcurrency = 8

// settings collects what both interpreters can be configured with.
type settings struct {
	baseDir         string
	logger          *zap.Logger
	prompter        Prompter
	initialContext  map[string]any
	copyConcurrency int

	// dry-run only
	seedFiles  map[string]string
	mocks      []Mock
	skipSleeps bool
}

// Option configures an interpreter.
// Options that do not apply to an interpreter are ignored by it.
type Option func(*settings)

func newSettings(opts []Option) settings {
	s := settings{
		logger:          zap.NewNop(),
		copyConcurrency: defaultCopyConcurrency,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithBaseDir resolves relative paths, and runs processes, under dir.
func WithBaseDir(dir string) Option {
	return func(s *settings) { s.baseDir = dir }
}

// WithLogger receives Log effects and the interpreter's own diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPrompter answers Prompt effects. Without one, every prompt takes its default.
func WithPrompter(p Prompter) Option {
	return func(s *settings) { s.prompter = p }
}

// WithInitialContext seeds the generator context the run starts with.
func WithInitialContext(vars map[string]any) Option {
	return func(s *settings) { s.initialContext = maps.Clone(vars) }
}

// WithCopyConcurrency bounds how many files a directory copy writes at once.
func WithCopyConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.copyConcurrency = n
		}
	}
}

// WithSeedFiles pre-populates the dry-run virtual filesystem with path to content entries.
func WithSeedFiles(files map[string]string) Option {
	return func(s *settings) {
		if s.seedFiles == nil {
			s.seedFiles = make(map[string]string, len(files))
		}
		maps.Copy(s.seedFiles, files)
	}
}

// WithMocks registers dry-run mocks. The first registered mock that matches an effect answers it.
func WithMocks(mocks ...Mock) Option {
	return func(s *settings) { s.mocks = append(s.mocks, mocks...) }
}

// SkipSleeps makes a dry run settle Sleep effects immediately.
func SkipSleeps() Option {
	return func(s *settings) { s.skipSleeps = true }
}

// contextStore holds the generator context variables of one run.
type contextStore struct {
	mu   sync.RWMutex
	vars map[string]any
}

func newContextStore(initial map[string]any) *contextStore {
	vars := maps.Clone(initial)
	if vars == nil {
		vars = make(map[string]any)
	}
	return &contextStore{vars: vars}
}

func (c *contextStore) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vars[key]
	return v, ok
}

func (c *contextStore) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vars[key] = value
}

func (c *contextStore) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.vars, key)
}

func (c *contextStore) snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.vars)
}
