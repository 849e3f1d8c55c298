package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/on-the-ground/effect_ive_gen/internal/config"
	"github.com/on-the-ground/effect_ive_gen/interpreter"
	"github.com/on-the-ground/effect_ive_gen/task"
)

func (c *cli) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the defaults to the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			write := task.WriteFile(config.ProjectFile, content)
			if !force {
				write = task.IfElseM(task.Exists(config.ProjectFile),
					task.FailWith[task.Unit](task.KindFailure, "%s already exists; use --force to overwrite it", config.ProjectFile),
					write,
				)
			}
			if _, err := interpreter.Run(cmd.Context(), write, interpreter.WithLogger(c.logger)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.ProjectFile)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	return cmd
}
