// Package recipe reads generator definitions from YAML files.
//
// A recipe declares prompts and a list of steps. Step fields may refer to
// answers as ${name}; they are substituted once the answers are known.
//
//	name: component
//	prompts:
//	  - name: name
//	    message: Component name?
//	    positional: true
//	    required: true
//	steps:
//	  - write: src/${name}/index.ts
//	    content: |
//	      export * from "./${name}"
//	  - run: npm install
//	    retries: 2
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Recipe is the decoded form of a recipe file.
type Recipe struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Prompts     []Prompt `yaml:"prompts,omitempty"`
	Steps       []Step   `yaml:"steps"`
}

// Prompt declares one question. Type defaults to text.
type Prompt struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type,omitempty"`
	Message    string   `yaml:"message"`
	Default    any      `yaml:"default,omitempty"`
	Options    []string `yaml:"options,omitempty"`
	Positional bool     `yaml:"positional,omitempty"`
	Group      string   `yaml:"group,omitempty"`
	// Required rejects empty text answers and empty selections.
	Required bool `yaml:"required,omitempty"`
	// Pattern is a regular expression text answers must match.
	Pattern string `yaml:"pattern,omitempty"`
}

// Step is one action of a recipe. Exactly one action field is set;
// the remaining fields modify it.
type Step struct {
	Write      string `yaml:"write,omitempty"`
	Append     string `yaml:"append,omitempty"`
	Content    string `yaml:"content,omitempty"`
	Mkdir      string `yaml:"mkdir,omitempty"`
	CopyFile   string `yaml:"copy_file,omitempty"`
	CopyDir    string `yaml:"copy_dir,omitempty"`
	To         string `yaml:"to,omitempty"`
	Delete     string `yaml:"delete,omitempty"`
	DeleteDir  string `yaml:"delete_dir,omitempty"`
	SortLines  string `yaml:"sort_lines,omitempty"`
	Run        string `yaml:"run,omitempty"`
	Cwd        string `yaml:"cwd,omitempty"`
	Log        string `yaml:"log,omitempty"`
	Level      string `yaml:"level,omitempty"`
	Parallel   []Step `yaml:"parallel,omitempty"`
	SetContext string `yaml:"set_context,omitempty"`
	Value      string `yaml:"value,omitempty"`

	// When and Unless guard the step on an answer: "name" tests that the
	// answer is set and truthy, "name=value" compares it.
	When   string `yaml:"when,omitempty"`
	Unless string `yaml:"unless,omitempty"`
	// SkipIfExists leaves an existing write target alone.
	SkipIfExists bool `yaml:"skip_if_exists,omitempty"`
	// Optional ignores the step's failure.
	Optional bool          `yaml:"optional,omitempty"`
	Retries  int           `yaml:"retries,omitempty"`
	Backoff  time.Duration `yaml:"backoff,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

type action string

const (
	actWrite      action = "write"
	actAppend     action = "append"
	actMkdir      action = "mkdir"
	actCopyFile   action = "copy_file"
	actCopyDir    action = "copy_dir"
	actDelete     action = "delete"
	actDeleteDir  action = "delete_dir"
	actSortLines  action = "sort_lines"
	actRun        action = "run"
	actLog        action = "log"
	actParallel   action = "parallel"
	actSetContext action = "set_context"
)

func (s Step) action() (action, error) {
	set := map[action]bool{
		actWrite:      s.Write != "",
		actAppend:     s.Append != "",
		actMkdir:      s.Mkdir != "",
		actCopyFile:   s.CopyFile != "",
		actCopyDir:    s.CopyDir != "",
		actDelete:     s.Delete != "",
		actDeleteDir:  s.DeleteDir != "",
		actSortLines:  s.SortLines != "",
		actRun:        s.Run != "",
		actLog:        s.Log != "",
		actParallel:   len(s.Parallel) > 0,
		actSetContext: s.SetContext != "",
	}
	var found []string
	var act action
	for a, ok := range set {
		if ok {
			act = a
			found = append(found, string(a))
		}
	}
	switch len(found) {
	case 0:
		return "", errors.New("no action set")
	case 1:
		return act, nil
	default:
		slices.Sort(found)
		return "", fmt.Errorf("more than one action set: %s", strings.Join(found, ", "))
	}
}

// Parse decodes a recipe and checks its structure. Unknown keys are an error.
func Parse(data []byte) (Recipe, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Recipe{}, errors.New("recipe: empty document")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Recipe
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return Recipe{}, fmt.Errorf("recipe: decode: %w", err)
	}
	if err := r.check(); err != nil {
		return Recipe{}, fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	return r, nil
}

// LoadFile reads and parses the recipe at path.
func LoadFile(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return Recipe{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func (r Recipe) check() error {
	var err error
	if r.Name == "" {
		err = multierr.Append(err, errors.New("name must not be empty"))
	}
	if len(r.Steps) == 0 {
		err = multierr.Append(err, errors.New("steps must not be empty"))
	}
	err = multierr.Append(err, checkSteps("steps", r.Steps))
	return err
}

func checkSteps(at string, steps []Step) error {
	var err error
	for i, s := range steps {
		where := fmt.Sprintf("%s[%d]", at, i)
		act, aerr := s.action()
		if aerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", where, aerr))
			continue
		}
		if (act == actCopyFile || act == actCopyDir) && s.To == "" {
			err = multierr.Append(err, fmt.Errorf("%s: %s needs to", where, act))
		}
		if s.When != "" && s.Unless != "" {
			err = multierr.Append(err, fmt.Errorf("%s: when and unless are exclusive", where))
		}
		if s.Retries < 0 || s.Backoff < 0 || s.Timeout < 0 {
			err = multierr.Append(err, fmt.Errorf("%s: negative retries or durations", where))
		}
		if act == actParallel {
			err = multierr.Append(err, checkSteps(where+".parallel", s.Parallel))
		}
	}
	return err
}
