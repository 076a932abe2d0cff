package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/recent"
)

func addRecent(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	path := ""
	clear := false

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent-documents history behind the OS-managed categories.",
		Example: `
jump recent --app com.example.editor
jump recent --app com.example.editor --add ~/notes/todo.txt
jump recent --app com.example.editor --clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := recent.Recent{
				App:         app,
				Path:        path,
				Clear:       clear,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAppArgs(cmd, ao)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&path, "add", "",
		"Record a document open for this path.")
	cmd.Flags().BoolVar(&clear, "clear", false,
		"Clear the recent-documents history.")

	topLevel.AddCommand(cmd)
}
