package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/tasks"
)

func addTasks(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Replace only the Tasks category from a JSON array of task items.",
		Example: `
jump tasks --app com.example.editor --file tasks.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := tasks.Tasks{
				App:         app,
				File:        fo.File,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleResult(s.Result, err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddFileArgs(cmd, fo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
