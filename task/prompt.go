package task

import (
	"fmt"
	"slices"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// PromptText asks for free text. The interpreter answers def when the user gives none.
func PromptText(name, message, def string) Task[string] {
	if t, ok := validated[string]("promptText", requireNonEmpty("name", name), requireNonEmpty("message", message)); !ok {
		return t
	}
	return perform[string](effects.Prompt{
		Name:    name,
		Type:    effects.PromptText,
		Message: message,
		Default: def,
	})
}

// PromptConfirm asks a yes/no question.
func PromptConfirm(name, message string, def bool) Task[bool] {
	if t, ok := validated[bool]("promptConfirm", requireNonEmpty("name", name), requireNonEmpty("message", message)); !ok {
		return t
	}
	return perform[bool](effects.Prompt{
		Name:    name,
		Type:    effects.PromptConfirm,
		Message: message,
		Default: def,
	})
}

// PromptSelect asks for one of options. An empty def selects the first option.
func PromptSelect(name, message string, options []string, def string) Task[string] {
	if t, ok := validated[string](
		"promptSelect",
		requireNonEmpty("name", name),
		requireNonEmpty("message", message),
		validOptions(options),
		defaultsInOptions(options, def),
	); !ok {
		return t
	}
	if def == "" {
		def = options[0]
	}
	return perform[string](effects.Prompt{
		Name:    name,
		Type:    effects.PromptSelect,
		Message: message,
		Default: def,
		Options: slices.Clone(options),
	})
}

// PromptMultiselect asks for any subset of options.
func PromptMultiselect(name, message string, options []string, defs []string) Task[[]string] {
	if t, ok := validated[[]string](
		"promptMultiselect",
		requireNonEmpty("name", name),
		requireNonEmpty("message", message),
		validOptions(options),
		defaultsInOptions(options, defs...),
	); !ok {
		return t
	}
	return perform[[]string](effects.Prompt{
		Name:    name,
		Type:    effects.PromptMultiselect,
		Message: message,
		Default: slices.Clone(defs),
		Options: slices.Clone(options),
	})
}

func validOptions(options []string) error {
	if len(options) == 0 {
		return fmt.Errorf("options must not be empty")
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if _, dup := seen[o]; dup {
			return fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = struct{}{}
	}
	return nil
}

func defaultsInOptions(options []string, defs ...string) error {
	for _, d := range defs {
		if d != "" && !slices.Contains(options, d) {
			return fmt.Errorf("default %q is not one of the options", d)
		}
	}
	return nil
}
