package generator

import (
	"context"

	"go.uber.org/zap"

	"github.com/on-the-ground/effect_ive_gen/interpreter"
)

// Options selects how Execute interprets a generator.
type Options struct {
	// DryRun previews the generator instead of performing its effects.
	DryRun bool
	// Interpreter configures whichever interpreter runs.
	Interpreter []interpreter.Option
	Logger      *zap.Logger
}

// Outcome is what running a generator produced.
type Outcome struct {
	DryRun  bool
	Answers Answers
	Report  interpreter.Report
	// Log, Files and Digests are only set for dry runs.
	Log     *interpreter.Log
	Files   map[string]string
	Digests map[string]uint64
}

// Execute validates d, then collects its answers and runs the task it builds.
// Dry runs use the dry-run interpreter; otherwise effects are performed for real.
func Execute(ctx context.Context, d Definition, preset Answers, opts Options) (Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := d.Check(); err != nil {
		return Outcome{DryRun: opts.DryRun}, err
	}

	iopts := append([]interpreter.Option{interpreter.WithLogger(logger)}, opts.Interpreter...)
	logger = logger.With(zap.String("generator", d.Name), zap.Bool("dry_run", opts.DryRun))
	logger.Info("running generator", zap.Int("prompts", len(d.Prompts)))

	var (
		out = Outcome{DryRun: opts.DryRun}
		err error
	)
	if opts.DryRun {
		res := interpreter.DryRunWith(ctx, Plan(d, preset), iopts...)
		out.Answers, err = res.Value, res.Err
		out.Report = res.Report
		out.Log, out.Files, out.Digests = res.Log, res.Files, res.Digests
	} else {
		p := interpreter.NewProduction(iopts...)
		out.Answers, err = interpreter.RunTask(ctx, p, Plan(d, preset))
		out.Report = p.Report()
	}

	if err != nil {
		logger.Error("generator failed", zap.String("run", out.Report.RunID), zap.Error(err))
		return out, err
	}
	logger.Info("generator finished",
		zap.String("run", out.Report.RunID),
		zap.Duration("took", out.Report.Span.Duration()),
	)
	return out, nil
}
