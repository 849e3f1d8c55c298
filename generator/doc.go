// Package generator is the boundary between scaffolding logic and the task
// engine.
//
// A Definition names the prompts a generator asks and builds a task from
// their answers. Execute collects the answers through Prompt effects, then
// runs the task with the production interpreter, or with the dry-run
// interpreter when previewing:
//
//	out, err := generator.Execute(ctx, def, generator.Answers{"name": "button"}, generator.Options{DryRun: true})
//	if err != nil {
//		fmt.Fprintln(os.Stderr, generator.Explain(err))
//	}
//	generator.WritePreview(os.Stdout, out)
package generator
