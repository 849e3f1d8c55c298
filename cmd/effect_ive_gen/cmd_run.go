package main

import (
	"fmt"
	"maps"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/on-the-ground/effect_ive_gen/generator"
	"github.com/on-the-ground/effect_ive_gen/internal/recipe"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
)

func (c *cli) runCmd() *cobra.Command {
	var dryRun, yes bool
	cmd := &cobra.Command{
		Use:   "run <recipe> [args...]",
		Short: "Run a recipe, performing its effects",
		Long: `Runs a recipe. Positional arguments answer the recipe's positional
prompts in order; --set answers any prompt by name. Prompts left unanswered
are asked on the terminal unless --yes accepts their defaults.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(cmd, args, dryRun || c.cfg.DryRun, yes)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the recipe instead of running it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the default of every unanswered prompt")
	return cmd
}

func (c *cli) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <recipe> [args...]",
		Short: "Show what a recipe would do without doing it",
		Long: `Interprets a recipe against an in-memory copy of the filesystem and
prints every effect it would perform. Unanswered prompts take their defaults.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(cmd, args, true, true)
		},
	}
}

// runError reports a failed recipe in terms of the effect that failed.
type runError struct {
	recipe string
	err    error
}

func (e *runError) Error() string {
	return fmt.Sprintf("recipe %s: %s", e.recipe, generator.Explain(e.err))
}

func (e *runError) Unwrap() error { return e.err }

func (c *cli) execute(cmd *cobra.Command, args []string, dryRun, acceptDefaults bool) error {
	r, err := recipe.LoadFile(args[0])
	if err != nil {
		return err
	}
	def, err := r.Definition(recipe.Settings{Shell: c.cfg.Exec.Shell, Concurrency: c.cfg.Concurrency})
	if err != nil {
		return err
	}

	preset, err := def.Positionals(args[1:])
	if err != nil {
		return err
	}
	sets, err := c.answers()
	if err != nil {
		return err
	}
	maps.Copy(preset, sets)

	opts := generator.Options{
		DryRun: dryRun,
		Logger: c.logger,
		Interpreter: []interpreter.Option{
			interpreter.WithCopyConcurrency(c.cfg.Concurrency),
		},
	}
	if c.cfg.BaseDir != "" {
		opts.Interpreter = append(opts.Interpreter, interpreter.WithBaseDir(c.cfg.BaseDir))
	}
	if !acceptDefaults {
		opts.Interpreter = append(opts.Interpreter, interpreter.WithPrompter(&interpreter.LinePrompter{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
		}))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := generator.Execute(ctx, def, preset, opts)
	if err != nil {
		return &runError{recipe: def.Name, err: err}
	}
	if dryRun {
		return generator.WritePreview(cmd.OutOrStdout(), out)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s finished in %s\n", def.Name, out.Report.Span.Duration().Round(time.Millisecond))
	return err
}
