package interpreter

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
)

// ErrAlreadyRun is returned when an interpreter is asked to run a second task.
var ErrAlreadyRun = errors.New("interpreter has already run a task")

// State is the lifecycle position of an interpreter.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report describes one finished, or ongoing, run.
type Report struct {
	RunID string
	State State
	// Span covers the run from start to settlement. It is empty until the run settles.
	Span timespan.TimeSpan
	Err  error
}

// lifecycle makes an interpreter single-shot: Idle, Running, then Succeeded or Failed.
type lifecycle struct {
	state   atomic.Int32
	runID   string
	started time.Time

	mu     sync.Mutex
	report Report
}

func (l *lifecycle) init() {
	l.runID = uuid.NewString()
}

func (l *lifecycle) start() error {
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyRun
	}
	l.started = time.Now()
	return nil
}

func (l *lifecycle) finish(err error) {
	final := StateSucceeded
	if err != nil {
		final = StateFailed
	}
	l.mu.Lock()
	l.report = Report{
		RunID: l.runID,
		State: final,
		Span:  timespan.BetweenTimes(l.started, time.Now()),
		Err:   err,
	}
	l.mu.Unlock()
	l.state.Store(int32(final))
}

// State reports where the interpreter is in its lifecycle.
func (l *lifecycle) State() State {
	return State(l.state.Load())
}

// Report returns the outcome of the run. Before the run settles only RunID and State are set.
func (l *lifecycle) Report() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.report.RunID == "" {
		return Report{RunID: l.runID, State: l.State()}
	}
	return l.report
}
