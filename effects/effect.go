package effects

import (
	"time"

	"github.com/on-the-ground/effect_ive_gen/effects/log"
	effectmodel "github.com/on-the-ground/effect_ive_gen/effects/model"
)

type (
	Kind       = effectmodel.Kind
	PromptType = effectmodel.PromptType
)

// Effect is a sealed interface over every primitive side effect.
// Only the variants declared in this package implement it.
type Effect interface {
	Kind() Kind
	sealedEffect()
}

// Program is an un-run task tree owned by a Parallel or Race effect.
// Only its next pending effect is inspectable; nil means it will settle
// without performing any effect.
type Program interface {
	PendingEffect() Effect
}

var (
	_ Effect = ReadFile{}
	_ Effect = WriteFile{}
	_ Effect = AppendFile{}
	_ Effect = Exists{}
	_ Effect = Glob{}
	_ Effect = CopyFile{}
	_ Effect = CopyDirectory{}
	_ Effect = DeleteFile{}
	_ Effect = DeleteDirectory{}
	_ Effect = MakeDir{}
	_ Effect = Exec{}
	_ Effect = Prompt{}
	_ Effect = Log{}
	_ Effect = ReadContext{}
	_ Effect = WriteContext{}
	_ Effect = Parallel{}
	_ Effect = Race{}
	_ Effect = Sleep{}
)

// ReadFile reads a whole file as text. Result: string.
type ReadFile struct {
	Path string
}

func (ReadFile) Kind() Kind     { return effectmodel.KindReadFile }
func (ReadFile) sealedEffect() {}

// WriteFile replaces a file's content, creating parent directories. Result: nil.
type WriteFile struct {
	Path    string
	Content string
}

func (WriteFile) Kind() Kind     { return effectmodel.KindWriteFile }
func (WriteFile) sealedEffect() {}

// AppendFile appends to a file, creating it when absent. Result: nil.
type AppendFile struct {
	Path    string
	Content string
}

func (AppendFile) Kind() Kind     { return effectmodel.KindAppendFile }
func (AppendFile) sealedEffect() {}

// Exists checks whether a file or directory is present. Result: bool.
type Exists struct {
	Path string
}

func (Exists) Kind() Kind     { return effectmodel.KindExists }
func (Exists) sealedEffect() {}

// Glob lists files matching a doublestar pattern relative to Cwd. Result: []string.
type Glob struct {
	Pattern string
	Cwd     string
}

func (Glob) Kind() Kind     { return effectmodel.KindGlob }
func (Glob) sealedEffect() {}

// CopyFile copies one file. Result: nil.
type CopyFile struct {
	Src  string
	Dest string
}

func (CopyFile) Kind() Kind     { return effectmodel.KindCopyFile }
func (CopyFile) sealedEffect() {}

// CopyDirectory copies a directory tree. Result: nil.
type CopyDirectory struct {
	Src  string
	Dest string
}

func (CopyDirectory) Kind() Kind     { return effectmodel.KindCopyDirectory }
func (CopyDirectory) sealedEffect() {}

// DeleteFile removes one file. Result: nil.
type DeleteFile struct {
	Path string
}

func (DeleteFile) Kind() Kind     { return effectmodel.KindDeleteFile }
func (DeleteFile) sealedEffect() {}

// DeleteDirectory removes a directory tree. Result: nil.
type DeleteDirectory struct {
	Path string
}

func (DeleteDirectory) Kind() Kind     { return effectmodel.KindDeleteDirectory }
func (DeleteDirectory) sealedEffect() {}

// MakeDir creates a directory and its parents. Result: nil.
type MakeDir struct {
	Path string
}

func (MakeDir) Kind() Kind     { return effectmodel.KindMakeDir }
func (MakeDir) sealedEffect() {}

// Exec runs an external process. Result: ExecResult.
type Exec struct {
	Command string
	Args    []string
	Cwd     string
	Env     []string
}

func (Exec) Kind() Kind     { return effectmodel.KindExec }
func (Exec) sealedEffect() {}

// ExecResult is the captured outcome of an Exec effect.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Prompt asks the user one question.
// Result: string for text and select, bool for confirm, []string for multiselect.
type Prompt struct {
	Name    string
	Type    PromptType
	Message string
	Default any
	Options []string
}

func (Prompt) Kind() Kind     { return effectmodel.KindPrompt }
func (Prompt) sealedEffect() {}

// Log emits one message. Result: nil.
type Log struct {
	Level   log.Level
	Message string
}

func (Log) Kind() Kind     { return effectmodel.KindLog }
func (Log) sealedEffect() {}

// ReadContext reads a generator context variable. Result: ContextValue.
type ReadContext struct {
	Key string
}

func (ReadContext) Kind() Kind     { return effectmodel.KindReadContext }
func (ReadContext) sealedEffect() {}

// ContextValue is the result of ReadContext.
type ContextValue struct {
	Value   any
	Present bool
}

// WriteContext sets a generator context variable, or removes it when Delete is set.
// Result: nil.
type WriteContext struct {
	Key    string
	Value  any
	Delete bool
}

func (WriteContext) Kind() Kind     { return effectmodel.KindWriteContext }
func (WriteContext) sealedEffect() {}

// Parallel interprets Tasks concurrently, at most Limit at a time when Limit > 0.
// Result: []any in input order.
type Parallel struct {
	Tasks []Program
	Limit int
}

func (Parallel) Kind() Kind     { return effectmodel.KindParallel }
func (Parallel) sealedEffect() {}

// Race interprets Tasks concurrently and settles with the first to finish.
// Result: the winner's value.
type Race struct {
	Tasks []Program
}

func (Race) Kind() Kind     { return effectmodel.KindRace }
func (Race) sealedEffect() {}

// Sleep suspends the calling continuation. Result: nil.
type Sleep struct {
	Duration time.Duration
}

func (Sleep) Kind() Kind     { return effectmodel.KindSleep }
func (Sleep) sealedEffect() {}
