package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// ErrorKind classifies a TaskError.
type ErrorKind string

const (
	// KindValidation marks malformed primitive arguments, caught before any effect runs.
	KindValidation ErrorKind = "validation"
	// KindExecution marks an effect that failed while being interpreted.
	KindExecution ErrorKind = "execution"
	// KindTimeout marks a task that did not settle in time.
	KindTimeout ErrorKind = "timeout"
	// KindParallel marks the first failure among concurrently run tasks.
	KindParallel ErrorKind = "parallel"
	// KindFailure marks a failure raised by the task itself.
	KindFailure ErrorKind = "failure"
	// KindPanic marks a panic recovered from a continuation.
	KindPanic ErrorKind = "panic"
)

// Sentinels matched by TaskError.Is, one per kind.
var (
	ErrValidation = errors.New("validation error")
	ErrExecution  = errors.New("task execution error")
	ErrTimeout    = errors.New("timeout error")
	ErrParallel   = errors.New("parallel task error")
	ErrFailure    = errors.New("task failure")
	ErrPanic      = errors.New("task panicked")
)

var sentinels = map[ErrorKind]error{
	KindValidation: ErrValidation,
	KindExecution:  ErrExecution,
	KindTimeout:    ErrTimeout,
	KindParallel:   ErrParallel,
	KindFailure:    ErrFailure,
	KindPanic:      ErrPanic,
}

// TaskError is the error every task failure surfaces as.
//
// Effect is set for execution errors, Index for parallel errors.
type TaskError struct {
	Kind    ErrorKind
	Message string
	Cause   error
	Context map[string]any
	Effect  effects.Effect
	Index   int
}

func (e *TaskError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of e's kind.
func (e *TaskError) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// WithContext returns a copy of e carrying one more context entry.
func (e *TaskError) WithContext(key string, value any) *TaskError {
	cp := *e
	cp.Context = make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		cp.Context[k] = v
	}
	cp.Context[key] = value
	return &cp
}

// NewError creates a TaskError of the given kind.
func NewError(kind ErrorKind, msg string, cause error) *TaskError {
	return &TaskError{Kind: kind, Message: msg, Cause: cause}
}

// NewValidationError reports malformed arguments of the named primitive.
func NewValidationError(primitive string, cause error) *TaskError {
	return &TaskError{
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid arguments to %s", primitive),
		Cause:   cause,
		Context: map[string]any{"primitive": primitive},
	}
}

// NewExecutionError wraps the failure of e while it was being interpreted.
func NewExecutionError(e effects.Effect, cause error) *TaskError {
	return &TaskError{
		Kind:    KindExecution,
		Message: effects.Describe(e),
		Cause:   cause,
		Effect:  e,
	}
}

// NewTimeoutError reports a task that did not settle within its limit.
func NewTimeoutError(limit fmt.Stringer) *TaskError {
	return &TaskError{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("task did not settle within %s", limit),
		Context: map[string]any{"limit": limit.String()},
	}
}

// NewParallelError reports the first failing task among concurrent siblings.
func NewParallelError(index int, cause error) *TaskError {
	return &TaskError{
		Kind:    KindParallel,
		Message: fmt.Sprintf("task %d failed", index),
		Cause:   cause,
		Index:   index,
	}
}

// AsTaskError returns err as a *TaskError, wrapping foreign errors as failures.
// An error that wraps a TaskError keeps its own message and takes the kind
// and context of the TaskError it wraps.
func AsTaskError(err error) *TaskError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TaskError); ok {
		return te
	}
	var inner *TaskError
	if errors.As(err, &inner) {
		return &TaskError{Kind: inner.Kind, Cause: err, Context: inner.Context, Index: inner.Index}
	}
	return NewError(KindFailure, "task failed", err)
}

// NewPanicError converts a recovered panic value into a TaskError.
func NewPanicError(r any) *TaskError {
	if err, ok := r.(error); ok {
		return NewError(KindPanic, "task panicked", err)
	}
	return NewError(KindPanic, fmt.Sprintf("task panicked: %v", r), nil)
}

// RootEffect digs through parallel wrappers for the effect that originally failed.
func RootEffect(err error) (effects.Effect, bool) {
	var te *TaskError
	for errors.As(err, &te) {
		if te.Effect != nil {
			return te.Effect, true
		}
		err = te.Cause
		te = nil
	}
	return nil, false
}
