package recipe

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/effects/log"
	"github.com/on-the-ground/effect_ive_gen/generator"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// Settings supplies what a recipe needs from its environment.
type Settings struct {
	// Shell runs the command line of run steps as `Shell -c line`.
	Shell string
	// Concurrency bounds the steps of a parallel block in flight.
	Concurrency int
}

// Definition turns r into a generator definition.
func (r Recipe) Definition(s Settings) (generator.Definition, error) {
	if s.Shell == "" {
		s.Shell = "sh"
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}

	var err error
	prompts := make([]generator.PromptDefinition, 0, len(r.Prompts))
	for _, p := range r.Prompts {
		pd, perr := p.definition()
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("prompt %q: %w", p.Name, perr))
			continue
		}
		prompts = append(prompts, pd)
	}
	if err != nil {
		return generator.Definition{}, fmt.Errorf("recipe %q: %w", r.Name, err)
	}

	steps := slices.Clone(r.Steps)
	return generator.Definition{
		Name:        r.Name,
		Description: r.Description,
		Prompts:     prompts,
		Build: func(a generator.Answers) task.Task[task.Unit] {
			return task.Traverse_(steps, func(st Step) task.Task[task.Unit] {
				return st.compile(a, s)
			})
		},
	}, nil
}

func (p Prompt) definition() (generator.PromptDefinition, error) {
	typ := effects.PromptType(p.Type)
	if p.Type == "" {
		typ = effects.PromptText
	}
	def, err := promptDefault(typ, p.Default)
	if err != nil {
		return generator.PromptDefinition{}, err
	}

	var re *regexp.Regexp
	if p.Pattern != "" {
		if re, err = regexp.Compile(p.Pattern); err != nil {
			return generator.PromptDefinition{}, fmt.Errorf("pattern: %w", err)
		}
	}

	pd := generator.PromptDefinition{
		Name:       p.Name,
		Type:       typ,
		Message:    p.Message,
		Default:    def,
		Options:    slices.Clone(p.Options),
		Positional: p.Positional,
		Group:      p.Group,
	}
	if p.Required || re != nil {
		pd.Validate = func(v any) error {
			if p.Required && blank(v) {
				return errors.New("an answer is required")
			}
			if s, ok := v.(string); ok && re != nil && !re.MatchString(s) {
				return fmt.Errorf("%q does not match %s", s, p.Pattern)
			}
			return nil
		}
	}
	return pd, nil
}

func promptDefault(typ effects.PromptType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch typ {
	case effects.PromptConfirm:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("default %v is not a boolean", v)
		}
		return b, nil
	case effects.PromptMultiselect:
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("default %v is not a list", v)
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return fmt.Sprint(v), nil
	}
}

func blank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func (st Step) compile(a generator.Answers, s Settings) task.Task[task.Unit] {
	act, err := st.action()
	if err != nil {
		return task.Fail[task.Unit](task.NewError(task.KindValidation, "invalid step", err))
	}
	run, err := st.enabled(a)
	if err != nil {
		return task.Fail[task.Unit](task.NewError(task.KindValidation, fmt.Sprintf("invalid %s step", act), err))
	}
	if !run {
		return task.Debug(fmt.Sprintf("skipping %s step", act))
	}

	x := &expander{answers: a}
	var t task.Task[task.Unit]
	switch act {
	case actWrite:
		path := x.expand(st.Write)
		t = task.WriteFile(path, x.expand(st.Content))
		if st.SkipIfExists {
			t = task.UnlessM(task.Exists(path), t)
		}
	case actAppend:
		t = task.AppendFile(x.expand(st.Append), x.expand(st.Content))
	case actMkdir:
		t = task.Mkdir(x.expand(st.Mkdir))
	case actCopyFile:
		t = task.CopyFile(x.expand(st.CopyFile), x.expand(st.To))
	case actCopyDir:
		t = task.CopyDirectory(x.expand(st.CopyDir), x.expand(st.To))
	case actDelete:
		t = task.DeleteFile(x.expand(st.Delete))
	case actDeleteDir:
		t = task.DeleteDirectory(x.expand(st.DeleteDir))
	case actSortLines:
		t = task.SortFileLines(x.expand(st.SortLines))
	case actRun:
		t = task.Void(task.Exec(s.Shell, []string{"-c", x.expand(st.Run)}, task.ExecOptions{Cwd: x.expand(st.Cwd)}))
	case actLog:
		level, lerr := log.ParseLevel(st.Level)
		if lerr != nil {
			return task.Fail[task.Unit](task.NewError(task.KindValidation, "invalid log step", lerr))
		}
		t = task.Log(level, x.expand(st.Log))
	case actParallel:
		branches := make([]task.Task[task.Unit], len(st.Parallel))
		for i, sub := range st.Parallel {
			branches[i] = sub.compile(a, s)
		}
		t = task.Void(task.ParallelN(s.Concurrency, branches))
	case actSetContext:
		t = task.SetContext(st.SetContext, x.expand(st.Value))
	}
	if err := x.err(); err != nil {
		return task.Fail[task.Unit](task.NewError(task.KindValidation, fmt.Sprintf("invalid %s step", act), err))
	}
	return st.decorate(t)
}

func (st Step) decorate(t task.Task[task.Unit]) task.Task[task.Unit] {
	if st.Timeout > 0 {
		t = task.Timeout(t, st.Timeout)
	}
	if st.Retries > 0 {
		if st.Backoff > 0 {
			t = task.RetryWithBackoff(t, st.Retries, st.Backoff)
		} else {
			t = task.Retry(t, st.Retries)
		}
	}
	if st.Optional {
		t = task.Void(task.Optional(t))
	}
	return t
}

// enabled evaluates the When or Unless guard against a.
func (st Step) enabled(a generator.Answers) (bool, error) {
	switch {
	case st.When != "":
		return guard(st.When, a)
	case st.Unless != "":
		ok, err := guard(st.Unless, a)
		return !ok, err
	default:
		return true, nil
	}
}

func guard(cond string, a generator.Answers) (bool, error) {
	name, want, compare := strings.Cut(cond, "=")
	name = strings.TrimSpace(name)
	v, ok := a[name]
	if !ok {
		return false, fmt.Errorf("condition %q names no prompt answer", cond)
	}
	if compare {
		want = strings.TrimSpace(want)
		if ss, isList := v.([]string); isList {
			return slices.Contains(ss, want), nil
		}
		return render(v) == want, nil
	}
	if b, isBool := v.(bool); isBool {
		return b, nil
	}
	return !blank(v), nil
}

// expander substitutes ${name} references with answers, remembering the
// names it could not resolve. $$ stands for a literal dollar sign.
type expander struct {
	answers generator.Answers
	missing []string
}

func (x *expander) expand(s string) string {
	return os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := x.answers[name]
		if !ok {
			if !slices.Contains(x.missing, name) {
				x.missing = append(x.missing, name)
			}
			return ""
		}
		return render(v)
	})
}

func (x *expander) err() error {
	if len(x.missing) == 0 {
		return nil
	}
	return fmt.Errorf("unknown variables: %s", strings.Join(x.missing, ", "))
}

func render(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}
