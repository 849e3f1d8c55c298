package interpreter

import (
	"slices"
	"sync"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// Record is one effect a dry run saw.
type Record struct {
	// Seq orders records by dispatch, starting at zero.
	Seq    int
	Effect effects.Effect
	// Touched lists the files the effect created or modified.
	Touched []string
	// Removed lists the files the effect deleted.
	Removed []string
	Mocked  bool
	Err     error
}

// Log is the ordered record of every effect a dry run dispatched.
// Effects of parallel branches interleave in dispatch order.
type Log struct {
	mu      sync.Mutex
	records []Record
}

func newLog() *Log {
	return &Log{}
}

func (l *Log) append(e effects.Effect) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	seq := len(l.records)
	l.records = append(l.records, Record{Seq: seq, Effect: e})
	return seq
}

func (l *Log) settle(seq int, settle func(*Record)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	settle(&l.records[seq])
}

// Records returns a copy of the log.
func (l *Log) Records() []Record {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := slices.Clone(l.records)
	for i := range out {
		out[i].Touched = slices.Clone(out[i].Touched)
		out[i].Removed = slices.Clone(out[i].Removed)
	}
	return out
}

// Effects returns the recorded effects in dispatch order.
func (l *Log) Effects() []effects.Effect {
	records := l.Records()
	out := make([]effects.Effect, len(records))
	for i, r := range records {
		out[i] = r.Effect
	}
	return out
}

// Kinds returns the kinds of the recorded effects in dispatch order.
func (l *Log) Kinds() []effects.Kind {
	records := l.Records()
	out := make([]effects.Kind, len(records))
	for i, r := range records {
		out[i] = r.Effect.Kind()
	}
	return out
}

// Len reports how many effects were recorded.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
