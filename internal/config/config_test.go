package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644))
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	isolateHome(t)
	c, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := isolateHome(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "effect_ive_gen", "config.yaml"), `
log_level: debug
concurrency: 2
dry_run: true
`)
	writeFile(t, filepath.Join(project, ProjectFile), `
concurrency: 4
dry_run: false
base_dir: out
exec:
  shell: bash
`)

	c, err := Load(project, "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:    "debug",
		DryRun:      false,
		Concurrency: 4,
		BaseDir:     filepath.Join(project, "out"),
		Exec:        Exec{Shell: "bash"},
	}, c)
	assert.Equal(t, zapcore.DebugLevel, c.Level())
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	explicit := filepath.Join(dir, "ci.yaml")
	writeFile(t, explicit, "dry_run: true")
	writeFile(t, filepath.Join(dir, ProjectFile), "concurrency: 3")

	c, err := Load(dir, explicit)
	require.NoError(t, err)
	assert.True(t, c.DryRun)
	assert.Equal(t, defaultConcurrency, c.Concurrency, "the project file is not read when a file is named")

	_, err = Load(dir, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_RejectsBadFiles(t *testing.T) {
	isolateHome(t)
	cases := map[string]string{
		"malformed":   "concurrency: [",
		"unknown key": "paralellism: 3",
		"wrong type":  "concurrency: many",
		"invalid":     "concurrency: 0",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ProjectFile), content)
			_, err := Load(dir, "")
			assert.Error(t, err)
		})
	}
}

func TestMerge_EmptyDocumentKeepsSettings(t *testing.T) {
	c := Default()
	require.NoError(t, c.Merge([]byte("# nothing yet\n")))
	assert.Equal(t, Default(), c)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	err := Config{LogLevel: "loud", Concurrency: 0}.Validate()
	require.Error(t, err)
	for _, want := range []string{`unknown log level "loud"`, "concurrency must be at least 1", "exec.shell must not be empty"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestMarshal(t *testing.T) {
	out, err := Default().Marshal()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# effect_ive_gen project settings\n"))
	assert.Contains(t, out, "concurrency: 8\n")
	assert.Contains(t, out, "exec:\n  shell: sh\n")
	assert.NotContains(t, out, "base_dir")

	c := Config{}
	require.NoError(t, c.Merge([]byte(out)))
	assert.Equal(t, Default(), c)
}
