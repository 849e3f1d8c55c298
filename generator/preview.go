package generator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/task"
)

// WritePreview prints what a dry run would have done: every recorded effect
// in dispatch order, then the files it would create, change or remove.
func WritePreview(w io.Writer, o Outcome) error {
	if o.Log == nil {
		_, err := fmt.Fprintln(w, "nothing to preview: the generator was not dry-run")
		return err
	}

	var b strings.Builder
	records := o.Log.Records()
	fmt.Fprintf(&b, "%d effects:\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&b, "%4d. %s", r.Seq+1, effects.Describe(r.Effect))
		switch {
		case r.Mocked:
			b.WriteString(" (mocked)")
		case r.Err != nil:
			fmt.Fprintf(&b, " (failed: %v)", r.Err)
		}
		b.WriteByte('\n')
	}

	if changed := interpreter.GetAffectedFiles(o.Log); len(changed) > 0 {
		b.WriteString("files that would change:\n")
		for _, p := range changed {
			if d, ok := o.Digests[p]; ok {
				fmt.Fprintf(&b, "  %s  %016x\n", p, d)
			} else {
				fmt.Fprintf(&b, "  %s\n", p)
			}
		}
	}
	if removed := interpreter.GetRemovedFiles(o.Log); len(removed) > 0 {
		b.WriteString("files that would be removed:\n")
		for _, p := range removed {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Explain renders err for a person reading a terminal.
// Execution failures name the effect that failed and why.
func Explain(err error) string {
	if err == nil {
		return ""
	}
	if te := failedEffect(err); te != nil {
		cause := te.Cause
		if cause == nil {
			cause = errors.New(te.Message)
		}
		return fmt.Sprintf("failed to %s: %v", effects.Describe(te.Effect), cause)
	}
	te := task.AsTaskError(err)
	if name, ok := te.Context["prompt"].(string); ok && te.Cause != nil {
		return fmt.Sprintf("invalid answer for %s: %v", name, te.Cause)
	}
	return te.Error()
}

// failedEffect digs through parallel wrappers for the execution error
// that carries the failing effect.
func failedEffect(err error) *task.TaskError {
	var te *task.TaskError
	for errors.As(err, &te) {
		if te.Effect != nil {
			return te
		}
		err = te.Cause
		te = nil
	}
	return nil
}
