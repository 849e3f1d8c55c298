// Package config loads the CLI's YAML settings.
//
// Settings are layered: built-in defaults, then the global file, then the
// project file. A later layer overrides only the keys it sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/on-the-ground/effect_ive_gen/effects/log"
)

const (
	// ProjectFile is the name of the per-project settings file.
	ProjectFile = ".effect_ive_gen.yaml"

	defaultConcurrency = 8
	defaultShell       = "sh"
)

// Exec tunes how recipes run commands.
type Exec struct {
	Shell string `yaml:"shell"`
}

// Config is the merged view of every settings layer.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	DryRun      bool   `yaml:"dry_run"`
	Concurrency int    `yaml:"concurrency"`
	BaseDir     string `yaml:"base_dir,omitempty"`
	Exec        Exec   `yaml:"exec"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:    string(log.LogInfo),
		Concurrency: defaultConcurrency,
		Exec:        Exec{Shell: defaultShell},
	}
}

// GlobalPath is where the user-wide settings file lives.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "effect_ive_gen", "config.yaml"), nil
}

// Load merges the defaults, the global file and the project file found in
// projectDir. When explicit is set it replaces the project file and must exist.
func Load(projectDir, explicit string) (Config, error) {
	c := Default()

	if global, err := GlobalPath(); err == nil {
		if _, err := c.MergeFile(global); err != nil {
			return Config{}, err
		}
	}

	project := filepath.Join(projectDir, ProjectFile)
	if explicit != "" {
		project = explicit
	}
	found, err := c.MergeFile(project)
	if err != nil {
		return Config{}, err
	}
	if explicit != "" && !found {
		return Config{}, fmt.Errorf("config: %s: %w", explicit, fs.ErrNotExist)
	}

	if c.BaseDir != "" && !filepath.IsAbs(c.BaseDir) {
		c.BaseDir = filepath.Join(filepath.Dir(project), c.BaseDir)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MergeFile overrides c with the keys set in the YAML file at path.
// A missing file leaves c untouched and reports false.
func (c *Config) MergeFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := c.Merge(data); err != nil {
		return true, fmt.Errorf("config: %s: %w", path, err)
	}
	return true, nil
}

// Merge overrides c with the keys set in data. Unknown keys are an error.
func (c *Config) Merge(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	next := *c
	if err := dec.Decode(&next); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse: %w", err)
	}
	*c = next
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if _, perr := log.ParseLevel(c.LogLevel); perr != nil {
		err = multierr.Append(err, perr)
	}
	if c.Concurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if strings.TrimSpace(c.Exec.Shell) == "" {
		err = multierr.Append(err, errors.New("exec.shell must not be empty"))
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level is the zap level matching LogLevel.
func (c Config) Level() zapcore.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	lvl, err := zapcore.ParseLevel(string(l))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Marshal renders c as a settings file.
func (c Config) Marshal() (string, error) {
	var b strings.Builder
	b.WriteString("# effect_ive_gen project settings\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	return b.String(), nil
}
