package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/set"
)

func addSet(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	fo := &options.FileOptions{}
	showRemoved := false

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace an app's jump list with the categories read from a JSON file.",
		Example: `
jump set --app com.example.editor --file jumplist.json
cat jumplist.json | jump set
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := set.Set{
				App:         app,
				File:        fo.File,
				ShowRemoved: showRemoved,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleResult(s.Result, err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddFileArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&showRemoved, "show-removed", false,
		"Print the destinations the user removed before rebuilding.")

	topLevel.AddCommand(cmd)
}
