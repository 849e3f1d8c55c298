package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/on-the-ground/effect_ive_gen/generator"
	"github.com/on-the-ground/effect_ive_gen/internal/config"
)

// cli holds the flags and settings shared by every command.
type cli struct {
	configPath string
	sets       []string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "effect_ive_gen",
		Short: "Run code-generation recipes",
		Long: `effect_ive_gen runs YAML recipes that scaffold files and run commands.

Every recipe step is described before it is performed, so a recipe can be
previewed against an in-memory copy of the filesystem and then run for real
with the same answers.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default: ./"+config.ProjectFile+")")
	root.PersistentFlags().StringArrayVar(&c.sets, "set", nil, "answer a prompt, as name=value (repeatable)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.runCmd(), c.previewCmd(), c.initCmd())
	return root
}

// setup loads the settings and builds the logger every command uses.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("locate working directory: %w", err)
	}
	if c.cfg, err = config.Load(wd, c.configPath); err != nil {
		return err
	}

	level := c.cfg.Level()
	if c.verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	c.logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(cmd.ErrOrStderr()), zap.NewAtomicLevelAt(level)))
	c.logger.Debug("settings loaded",
		zap.String("log_level", c.cfg.LogLevel),
		zap.Int("concurrency", c.cfg.Concurrency),
		zap.Bool("dry_run", c.cfg.DryRun),
	)
	return nil
}

// answers parses the --set flags.
func (c *cli) answers() (generator.Answers, error) {
	out := generator.Answers{}
	for _, kv := range c.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		out[strings.TrimSpace(name)] = value
	}
	return out, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
