// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// AppOptions captures the application identity a command operates on. An
// empty value falls back to the configured default.
type AppOptions struct {
	App string
}

// AddAppArgs wires the app identity flag on the provided command.
func AddAppArgs(cmd *cobra.Command, o *AppOptions) {
	cmd.Flags().StringVarP(&o.App, "app", "a", "",
		"Specify the application user model ID.")
}
