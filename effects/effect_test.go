package effects_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/on-the-ground/effect_ive_gen/effects"
	effectmodel "github.com/on-the-ground/effect_ive_gen/effects/model"
)

type pending struct{ next effects.Effect }

func (p pending) PendingEffect() effects.Effect { return p.next }

func everyEffect() []effects.Effect {
	return []effects.Effect{
		effects.ReadFile{Path: "a.txt"},
		effects.WriteFile{Path: "out/b.txt", Content: "hello"},
		effects.AppendFile{Path: "log.txt", Content: "x"},
		effects.Exists{Path: "c"},
		effects.Glob{Pattern: "**/*.go", Cwd: "src"},
		effects.CopyFile{Src: "a", Dest: "b"},
		effects.CopyDirectory{Src: "tpl", Dest: "out"},
		effects.DeleteFile{Path: "old.txt"},
		effects.DeleteDirectory{Path: "build"},
		effects.MakeDir{Path: "dist"},
		effects.Exec{Command: "go", Args: []string{"mod", "tidy"}, Cwd: "app"},
		effects.Prompt{Name: "name", Type: effects.PromptText, Message: "Name?"},
		effects.Log{Level: "info", Message: "hi"},
		effects.ReadContext{Key: "k"},
		effects.WriteContext{Key: "k", Value: 1},
		effects.Parallel{Tasks: []effects.Program{pending{}, pending{}}},
		effects.Race{Tasks: []effects.Program{pending{}}},
		effects.Sleep{Duration: time.Second},
	}
}

func TestKinds_CoverEveryVariant(t *testing.T) {
	var kinds []effects.Kind
	for _, e := range everyEffect() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, effectmodel.AllKinds, kinds)
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		effect effects.Effect
		want   string
	}{
		{effects.WriteFile{Path: "out/b.txt", Content: "hello"}, "write file out/b.txt (5 bytes)"},
		{effects.Glob{Pattern: "*.go"}, "glob *.go"},
		{effects.Glob{Pattern: "*.go", Cwd: "src"}, "glob *.go in src"},
		{effects.Exec{Command: "go", Args: []string{"mod", "tidy"}}, "exec go mod tidy"},
		{effects.Exec{Command: "make", Cwd: "app"}, "exec make in app"},
		{effects.Prompt{Name: "db", Type: effects.PromptSelect, Message: "Database?"}, "prompt db (select): Database?"},
		{effects.WriteContext{Key: "k", Delete: true}, "delete context k"},
		{effects.WriteContext{Key: "k", Value: 3}, "write context k = 3"},
		{effects.Parallel{Tasks: make([]effects.Program, 4), Limit: 2}, "run 4 tasks in parallel (at most 2 at a time)"},
		{effects.Parallel{Tasks: make([]effects.Program, 2), Limit: 8}, "run 2 tasks in parallel"},
		{effects.Sleep{Duration: 1500 * time.Millisecond}, "sleep 1.5s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, effects.Describe(tc.effect))
	}

	for _, e := range everyEffect() {
		assert.NotEmpty(t, effects.Describe(e), "%T", e)
	}
}

func TestIsWriteEffect(t *testing.T) {
	writes := map[effects.Kind]bool{
		effects.KindWriteFile:       true,
		effects.KindAppendFile:      true,
		effects.KindCopyFile:        true,
		effects.KindCopyDirectory:   true,
		effects.KindDeleteFile:      true,
		effects.KindDeleteDirectory: true,
		effects.KindMakeDir:         true,
		effects.KindExec:            true,
	}
	for _, e := range everyEffect() {
		assert.Equal(t, writes[e.Kind()], effects.IsWriteEffect(e), "%s", e.Kind())
	}
}

func TestAffectedPaths(t *testing.T) {
	got := map[effects.Kind][]string{}
	for _, e := range everyEffect() {
		if paths := effects.AffectedPaths(e); paths != nil {
			got[e.Kind()] = paths
		}
	}
	assert.Equal(t, map[effects.Kind][]string{
		effects.KindWriteFile:       {"out/b.txt"},
		effects.KindAppendFile:      {"log.txt"},
		effects.KindCopyFile:        {"b"},
		effects.KindCopyDirectory:   {"out"},
		effects.KindDeleteFile:      {"old.txt"},
		effects.KindDeleteDirectory: {"build"},
		effects.KindMakeDir:         {"dist"},
		effects.KindExec:            {"app"},
	}, got)

	assert.Nil(t, effects.AffectedPaths(effects.Exec{Command: "ls"}))
}

func TestPromptTypeValid(t *testing.T) {
	for _, pt := range []effects.PromptType{effects.PromptText, effects.PromptConfirm, effects.PromptSelect, effects.PromptMultiselect} {
		assert.True(t, pt.Valid(), pt)
	}
	assert.False(t, effects.PromptType("password").Valid())
	assert.False(t, effects.PromptType("").Valid())
}
