package generator

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// ErrInvalidDefinition is returned by Definition.Check for malformed definitions.
var ErrInvalidDefinition = errors.New("invalid generator definition")

// Answers maps prompt names to the answers collected for them.
//
// Values have the type their prompt produces: string for text and select,
// bool for confirm, []string for multiselect.
type Answers map[string]any

// String returns the answer to name when it is a string.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the answer to name when it is a bool.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns the answer to name when it is a list of choices.
func (a Answers) Strings(name string) []string {
	ss, _ := a[name].([]string)
	return ss
}

// PromptDefinition declares one question a generator asks.
type PromptDefinition struct {
	Name    string
	Type    effects.PromptType
	Message string
	// Default must match Type: string, bool or []string.
	Default any
	// Options lists the choices of select and multiselect prompts.
	Options []string
	// Validate rejects an answer by returning an error.
	Validate func(any) error
	// Positional prompts can be answered by command-line arguments, in declaration order.
	Positional bool
	// Group is a heading shared by related prompts.
	Group string
}

func (p PromptDefinition) effect() effects.Prompt {
	return effects.Prompt{
		Name:    p.Name,
		Type:    p.Type,
		Message: p.Message,
		Default: p.Default,
		Options: slices.Clone(p.Options),
	}
}

// Definition is a unit of scaffolding logic: prompts plus the task built from their answers.
type Definition struct {
	Name        string
	Description string
	Prompts     []PromptDefinition
	Build       func(Answers) task.Task[task.Unit]
}

// Check reports every problem with d at once.
func (d Definition) Check() error {
	var err error
	if d.Name == "" {
		err = multierr.Append(err, errors.New("name must not be empty"))
	}
	if d.Build == nil {
		err = multierr.Append(err, errors.New("build must not be nil"))
	}
	seen := make(map[string]struct{}, len(d.Prompts))
	for i, p := range d.Prompts {
		if p.Name == "" {
			err = multierr.Append(err, fmt.Errorf("prompt %d: name must not be empty", i))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("prompt %q is declared twice", p.Name))
		}
		seen[p.Name] = struct{}{}
		if !p.Type.Valid() {
			err = multierr.Append(err, fmt.Errorf("prompt %q: unknown type %q", p.Name, p.Type))
		}
		if p.Message == "" {
			err = multierr.Append(err, fmt.Errorf("prompt %q: message must not be empty", p.Name))
		}
		if (p.Type == effects.PromptSelect || p.Type == effects.PromptMultiselect) && len(p.Options) == 0 {
			err = multierr.Append(err, fmt.Errorf("prompt %q: %s needs options", p.Name, p.Type))
		}
	}
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidDefinition, d.Name, err)
	}
	return nil
}

// Prompt returns the prompt called name.
func (d Definition) Prompt(name string) (PromptDefinition, bool) {
	i := slices.IndexFunc(d.Prompts, func(p PromptDefinition) bool { return p.Name == name })
	if i < 0 {
		return PromptDefinition{}, false
	}
	return d.Prompts[i], true
}

// Groups returns the prompt groups in order of first appearance.
// Ungrouped prompts are not listed.
func (d Definition) Groups() []string {
	var groups []string
	for _, p := range d.Prompts {
		if p.Group != "" && !slices.Contains(groups, p.Group) {
			groups = append(groups, p.Group)
		}
	}
	return groups
}

// Positionals assigns command-line arguments to the positional prompts, in order.
// Extra arguments are an error.
func (d Definition) Positionals(args []string) (Answers, error) {
	out := Answers{}
	i := 0
	for _, p := range d.Prompts {
		if !p.Positional || i == len(args) {
			continue
		}
		out[p.Name] = args[i]
		i++
	}
	if i < len(args) {
		return nil, fmt.Errorf("generator %q takes %d positional arguments, got %d", d.Name, i, len(args))
	}
	return out, nil
}
