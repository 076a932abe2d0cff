package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jump/pkg/commands/options"
	"tableflip.dev/jump/pkg/runner/configure"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Configure the registry state jump lists depend on.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addFileType(cmd)
	addProtocol(cmd)
	addLogin(cmd)
	addPrivacy(cmd)

	topLevel.AddCommand(cmd)
}

func addFileType(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	remove := false

	cmd := &cobra.Command{
		Use:   "filetype <ext>",
		Short: "Register an app as a handler for a file extension.",
		Example: `
jump settings filetype .txt --app com.example.editor
jump settings filetype .txt --app com.example.editor --remove
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := configure.FileType{
				App:         app,
				Extension:   args[0],
				Remove:      remove,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAppArgs(cmd, ao)
	cmd.Flags().BoolVar(&remove, "remove", false,
		"Remove the handler registration.")

	topLevel.AddCommand(cmd)
}

func addProtocol(topLevel *cobra.Command) {
	remove := false
	query := false

	cmd := &cobra.Command{
		Use:   "protocol <scheme>",
		Short: "Register this binary as the default client for a URL protocol.",
		Example: `
jump settings protocol mailto
jump settings protocol mailto --query
jump settings protocol mailto --remove
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := load("")
			if err != nil {
				return err
			}
			s := configure.Protocol{
				Protocol:    args[0],
				Remove:      remove,
				Query:       query,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false,
		"Remove the registration if this binary owns it.")
	cmd.Flags().BoolVar(&query, "query", false,
		"Report whether this binary is the default client.")

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	ao := &options.AppOptions{}
	enable := false
	remove := false
	query := false

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Toggle whether an app opens at login.",
		Example: `
jump settings login --app com.example.editor --enable
jump settings login --app com.example.editor --query
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, app, err := load(ao.App)
			if err != nil {
				return err
			}
			s := configure.Login{
				App:         app,
				Enable:      enable,
				Remove:      remove,
				Query:       query,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAppArgs(cmd, ao)
	cmd.Flags().BoolVar(&enable, "enable", false,
		"Open the app at login.")
	cmd.Flags().BoolVar(&remove, "remove", false,
		"Stop opening the app at login.")
	cmd.Flags().BoolVar(&query, "query", false,
		"Report the current login item state.")

	topLevel.AddCommand(cmd)
}

func addPrivacy(topLevel *cobra.Command) {
	deny := false

	cmd := &cobra.Command{
		Use:   "privacy",
		Short: "Allow or deny custom categories via the policy key.",
		Example: `
jump settings privacy
jump settings privacy --deny
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := load("")
			if err != nil {
				return err
			}
			s := configure.Privacy{
				AllowCustomCategories: !deny,
				Persistence:           p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&deny, "deny", false,
		"Deny custom categories for every app.")

	topLevel.AddCommand(cmd)
}
