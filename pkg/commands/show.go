package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	watch := false
	descriptions := false
	all := false

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get"},
		Short:   "Render the committed jump list for an app, or for every app.",
		Example: `
jump show --app com.example.editor
jump show --all
jump show --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := show.Show{
				App:              app,
				Watch:            watch,
				ShowDescriptions: descriptions,
				Persistence:      p,
			}
			if all {
				s.App = ""
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&all, "all", false,
		"Show every app known to the store.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Re-render whenever the store changes.")
	cmd.Flags().BoolVar(&descriptions, "descriptions", false,
		"Include task descriptions.")

	topLevel.AddCommand(cmd)
}
