package interpreter

import (
	"context"
	"sync"
	"time"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// Matcher selects the effects a mock answers.
type Matcher func(effects.Effect) bool

// Responder produces a mocked effect's result.
type Responder func(ctx context.Context, e effects.Effect) (any, error)

// Mock replaces the simulation of matching effects in a dry run.
type Mock struct {
	Match   Matcher
	Respond Responder
	// Times limits how many effects the mock answers. Zero means no limit.
	Times int
}

// MockEffect answers every effect matched by match with respond.
func MockEffect(match Matcher, respond Responder) Option {
	return WithMocks(Mock{Match: match, Respond: respond})
}

// MockEffectTimes is MockEffect answering at most n effects.
func MockEffectTimes(n int, match Matcher, respond Responder) Option {
	return WithMocks(Mock{Match: match, Respond: respond, Times: n})
}

// MatchKind matches every effect of kind k.
func MatchKind(k effects.Kind) Matcher {
	return func(e effects.Effect) bool { return e.Kind() == k }
}

// MatchPath matches file effects of kind k on path p.
// For copies the destination is compared.
func MatchPath(k effects.Kind, p string) Matcher {
	want := cleanPath(p)
	return func(e effects.Effect) bool {
		if e.Kind() != k {
			return false
		}
		switch e := e.(type) {
		case effects.ReadFile:
			return cleanPath(e.Path) == want
		case effects.Exists:
			return cleanPath(e.Path) == want
		default:
			for _, affected := range effects.AffectedPaths(e) {
				if cleanPath(affected) == want {
					return true
				}
			}
			return false
		}
	}
}

// MatchPrompt matches the prompt named name.
func MatchPrompt(name string) Matcher {
	return func(e effects.Effect) bool {
		p, ok := e.(effects.Prompt)
		return ok && p.Name == name
	}
}

// MatchCommand matches exec effects running command.
func MatchCommand(command string) Matcher {
	return func(e effects.Effect) bool {
		x, ok := e.(effects.Exec)
		return ok && x.Command == command
	}
}

// Returns answers with v.
func Returns(v any) Responder {
	return func(context.Context, effects.Effect) (any, error) { return v, nil }
}

// Fails answers with err.
func Fails(err error) Responder {
	return func(context.Context, effects.Effect) (any, error) { return nil, err }
}

// ReturnsAfter answers with v once d has passed.
func ReturnsAfter(d time.Duration, v any) Responder {
	return func(ctx context.Context, _ effects.Effect) (any, error) {
		if err := sleep(ctx, d); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// mockSet hands out mocks in registration order, honouring their limits.
type mockSet struct {
	mu    sync.Mutex
	mocks []Mock
	used  []int
}

func newMockSet(mocks []Mock) *mockSet {
	return &mockSet{mocks: mocks, used: make([]int, len(mocks))}
}

func (m *mockSet) match(e effects.Effect) (Responder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mock := range m.mocks {
		if mock.Match == nil || mock.Respond == nil {
			continue
		}
		if mock.Times > 0 && m.used[i] >= mock.Times {
			continue
		}
		if mock.Match(e) {
			m.used[i]++
			return mock.Respond, true
		}
	}
	return nil, false
}
