package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "jump",
		Short: base.Wrap80("Manage application jump lists from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSet(topLevel)
	addDelete(topLevel)
	addTasks(topLevel)
	addShow(topLevel)
	addRemoved(topLevel)
	addRecent(topLevel)
	addSettings(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
}

// load resolves persistence plus the app identity a command targets,
// falling back to the configured default when the flag was not set.
func load(app string) (store.Persistence, string, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, "", err
	}
	if app == "" {
		app = cfg.DefaultAppID()
	}
	return p, app, nil
}
