package interpreter

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// FileWrite is one successful write or append a dry run simulated.
type FileWrite struct {
	Path    string
	Content string
	Append  bool
}

// AssertEffects checks that l recorded exactly the given kinds, in order.
func AssertEffects(l *Log, kinds ...effects.Kind) error {
	got := l.Kinds()
	if kinds == nil {
		kinds = []effects.Kind{}
	}
	if diff := cmp.Diff(kinds, got); diff != "" {
		return fmt.Errorf("recorded effects mismatch (-want +got):\n%s", diff)
	}
	return nil
}

// AssertFileWrites checks that the files written or appended to in l are exactly paths.
func AssertFileWrites(l *Log, paths ...string) error {
	want := make([]string, 0, len(paths))
	for _, p := range paths {
		want = append(want, cleanPath(p))
	}
	slices.Sort(want)
	want = slices.Compact(want)

	got := []string{}
	for _, w := range GetFileWrites(l) {
		got = append(got, w.Path)
	}
	slices.Sort(got)
	got = slices.Compact(got)

	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("written files mismatch (-want +got):\n%s", diff)
	}
	return nil
}

// GetFileWrites returns the successful, unmocked writes and appends in l, in dispatch order.
func GetFileWrites(l *Log) []FileWrite {
	var out []FileWrite
	for _, r := range l.Records() {
		if r.Err != nil || r.Mocked {
			continue
		}
		switch e := r.Effect.(type) {
		case effects.WriteFile:
			out = append(out, FileWrite{Path: cleanPath(e.Path), Content: e.Content})
		case effects.AppendFile:
			out = append(out, FileWrite{Path: cleanPath(e.Path), Content: e.Content, Append: true})
		}
	}
	return out
}

// GetAffectedFiles returns every file a run created or modified, sorted.
// Directory copies contribute each file they copied. Deleted files are not included.
func GetAffectedFiles(l *Log) []string {
	var out []string
	for _, r := range l.Records() {
		if r.Err == nil {
			out = append(out, r.Touched...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// GetRemovedFiles returns every file a run deleted, sorted.
func GetRemovedFiles(l *Log) []string {
	var out []string
	for _, r := range l.Records() {
		if r.Err == nil {
			out = append(out, r.Removed...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CountEffects counts the recorded effects of kind k.
func CountEffects(l *Log, k effects.Kind) int {
	n := 0
	for _, kind := range l.Kinds() {
		if kind == k {
			n++
		}
	}
	return n
}

// FilterEffects returns the recorded effects keep accepts, in dispatch order.
func FilterEffects(l *Log, keep func(effects.Effect) bool) []effects.Effect {
	var out []effects.Effect
	for _, e := range l.Effects() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// CollectEffects dry-runs t and returns every effect it dispatched.
// The task's own failure is returned alongside the effects it got through.
func CollectEffects[A any](ctx context.Context, t task.Task[A], opts ...Option) ([]effects.Effect, error) {
	res := DryRunWith(ctx, t, opts...)
	return res.Log.Effects(), res.Err
}
