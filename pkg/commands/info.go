package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/runner/info"
	"tableflip.dev/jump/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show config and the apps with committed jump lists.",
		Example: `
jump info
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := info.Info{
				Persistence: p,
			}
			err = i.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
