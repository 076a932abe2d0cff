package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/del"
)

func addDelete(topLevel *cobra.Command) {
	ao := &options.AppOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"del", "reset"},
		Short:   "Remove an app's custom jump list, restoring the system default.",
		Example: `
jump delete --app com.example.editor
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := del.Delete{
				App:         app,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleResult(s.Result, err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
