package generator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/shared/helper"
	"github.com/on-the-ground/effect_ive_gen/task"
)

type answer struct {
	name  string
	value any
}

// CollectAnswers answers every prompt of d, in declaration order.
//
// Preset answers are converted to the prompt's type without asking;
// every other prompt is asked through a Prompt effect, so the interpreter
// decides whether a person, a static answer set or the default replies.
// Answers rejected by a prompt's Validate fail the task with a
// validation error naming the prompt.
func CollectAnswers(d Definition, preset Answers) task.Task[Answers] {
	preset = maps.Clone(preset)
	indexes := make([]int, len(d.Prompts))
	for i := range indexes {
		indexes[i] = i
	}
	collected := task.Traverse(indexes, func(i int) task.Task[answer] {
		p := d.Prompts[i]
		one := answerOne(p, preset)
		if p.Group == "" || (i > 0 && d.Prompts[i-1].Group == p.Group) {
			return one
		}
		return task.FlatMap(task.Debug("prompt group "+p.Group), func(task.Unit) task.Task[answer] { return one })
	})
	return task.Map(collected, func(as []answer) Answers {
		out := make(Answers, len(as))
		for _, a := range as {
			out[a.name] = a.value
		}
		return out
	})
}

func answerOne(p PromptDefinition, preset Answers) task.Task[answer] {
	var value task.Task[any]
	if raw, ok := preset[p.Name]; ok {
		v, err := interpreter.CoerceAnswer(p.effect(), raw)
		if err != nil {
			return task.Fail[answer](rejected(p.Name, err))
		}
		value = task.Pure(v)
	} else {
		value = ask(p)
	}
	return task.FlatMap(value, func(v any) task.Task[answer] {
		if p.Validate != nil {
			if err := p.Validate(v); err != nil {
				return task.Fail[answer](rejected(p.Name, err))
			}
		}
		return task.Pure(answer{name: p.Name, value: v})
	})
}

func ask(p PromptDefinition) task.Task[any] {
	switch p.Type {
	case effects.PromptConfirm:
		def, _ := helper.Cast[bool](p.Default)
		return asAny(task.PromptConfirm(p.Name, p.Message, def))
	case effects.PromptSelect:
		def, _ := helper.Cast[string](p.Default)
		return asAny(task.PromptSelect(p.Name, p.Message, p.Options, def))
	case effects.PromptMultiselect:
		defs, _ := helper.Cast[[]string](p.Default)
		return asAny(task.PromptMultiselect(p.Name, p.Message, p.Options, defs))
	default:
		def, _ := helper.Cast[string](p.Default)
		return asAny(task.PromptText(p.Name, p.Message, def))
	}
}

func asAny[A any](t task.Task[A]) task.Task[any] {
	return task.Map(t, func(a A) any { return a })
}

func rejected(name string, err error) *task.TaskError {
	return task.NewError(task.KindValidation, fmt.Sprintf("answer to %q rejected", name), err).
		WithContext("prompt", name)
}

// Plan collects the answers of d, publishes each one to the run context
// under its prompt name, then runs the task d builds from them.
func Plan(d Definition, preset Answers) task.Task[Answers] {
	return task.FlatMap(CollectAnswers(d, preset), func(a Answers) task.Task[Answers] {
		keys := slices.Sorted(maps.Keys(a))
		publish := task.Traverse_(keys, func(k string) task.Task[task.Unit] {
			return task.SetContext(k, a[k])
		})
		return task.FlatMap(publish, func(task.Unit) task.Task[Answers] {
			return task.As(d.Build(a), a)
		})
	})
}
