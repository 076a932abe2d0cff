package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/removed"
)

func addRemoved(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	target := ""
	clear := false

	cmd := &cobra.Command{
		Use:   "removed",
		Short: "Inspect or feed the removed-destinations list an app sees on its next rebuild.",
		Example: `
jump removed --app com.example.editor
jump removed --app com.example.editor --remove "Open Recent"
jump removed --app com.example.editor --clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := removed.Removed{
				App:         app,
				Target:      target,
				Clear:       clear,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&target, "remove", "",
		"Remove the committed destination matching this title or path.")
	cmd.Flags().BoolVar(&clear, "clear", false,
		"Clear the removed-destinations list.")

	topLevel.AddCommand(cmd)
}
