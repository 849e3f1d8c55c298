package interpreter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// Prompter answers Prompt effects.
//
// Answers must have the type the prompt expects: string for text and
// select, bool for confirm, []string for multiselect.
type Prompter interface {
	Prompt(ctx context.Context, p effects.Prompt) (any, error)
}

// StaticPrompter answers prompts from a map keyed by prompt name.
// Prompts missing from the map take their default.
type StaticPrompter map[string]any

func (s StaticPrompter) Prompt(_ context.Context, p effects.Prompt) (any, error) {
	raw, ok := s[p.Name]
	if !ok {
		return defaultAnswer(p), nil
	}
	return coerceAnswer(p, raw)
}

// LinePrompter asks prompts on Out and reads one answer per line from In.
// An empty line takes the default.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	once    sync.Once
	mu      sync.Mutex
	scanner *bufio.Scanner
}

func (l *LinePrompter) Prompt(ctx context.Context, p effects.Prompt) (any, error) {
	l.once.Do(func() { l.scanner = bufio.NewScanner(l.In) })

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Fprint(l.Out, question(p))
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading answer to %q: %w", p.Name, err)
		}
		return defaultAnswer(p), nil
	}
	line := strings.TrimSpace(l.scanner.Text())
	if line == "" {
		return defaultAnswer(p), nil
	}
	return coerceAnswer(p, line)
}

func question(p effects.Prompt) string {
	var b strings.Builder
	b.WriteString(p.Message)
	if len(p.Options) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(p.Options, ", "))
	}
	switch d := defaultAnswer(p).(type) {
	case string:
		if d != "" {
			fmt.Fprintf(&b, " (%s)", d)
		}
	case []string:
		if len(d) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(d, ", "))
		}
	default:
		fmt.Fprintf(&b, " (%v)", d)
	}
	b.WriteString(": ")
	return b.String()
}

// defaultAnswer is the answer a prompt takes when nobody answers it.
func defaultAnswer(p effects.Prompt) any {
	switch p.Type {
	case effects.PromptConfirm:
		b, _ := p.Default.(bool)
		return b
	case effects.PromptSelect:
		if s, ok := p.Default.(string); ok && s != "" {
			return s
		}
		if len(p.Options) > 0 {
			return p.Options[0]
		}
		return ""
	case effects.PromptMultiselect:
		if ss, ok := p.Default.([]string); ok {
			return slices.Clone(ss)
		}
		return []string{}
	default:
		s, _ := p.Default.(string)
		return s
	}
}

// CoerceAnswer converts a raw answer, such as a command-line string, into
// the type p expects. Select and multiselect answers must name known options.
func CoerceAnswer(p effects.Prompt, raw any) (any, error) {
	return coerceAnswer(p, raw)
}

// DefaultAnswer is the answer p takes when nobody answers it.
func DefaultAnswer(p effects.Prompt) any {
	return defaultAnswer(p)
}

func coerceAnswer(p effects.Prompt, raw any) (any, error) {
	switch p.Type {
	case effects.PromptConfirm:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "y", "yes":
				return true, nil
			case "n", "no":
				return false, nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("answer to %q is not yes or no: %q", p.Name, v)
			}
			return b, nil
		}
	case effects.PromptSelect:
		if s, ok := raw.(string); ok {
			if !slices.Contains(p.Options, s) {
				return nil, fmt.Errorf("answer to %q is not one of %v: %q", p.Name, p.Options, s)
			}
			return s, nil
		}
	case effects.PromptMultiselect:
		var picked []string
		switch v := raw.(type) {
		case []string:
			picked = slices.Clone(v)
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("answer to %q has a non-string choice %v", p.Name, item)
				}
				picked = append(picked, s)
			}
		case string:
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					picked = append(picked, s)
				}
			}
		default:
			return nil, fmt.Errorf("answer to %q has type %T, want a list of choices", p.Name, raw)
		}
		for _, s := range picked {
			if !slices.Contains(p.Options, s) {
				return nil, fmt.Errorf("answer to %q is not one of %v: %q", p.Name, p.Options, s)
			}
		}
		if picked == nil {
			picked = []string{}
		}
		return picked, nil
	default:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return fmt.Sprint(raw), nil
	}
	return nil, fmt.Errorf("answer to %q has type %T, want %s", p.Name, raw, p.Type)
}
