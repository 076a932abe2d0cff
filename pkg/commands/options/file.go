package options

import (
	"github.com/spf13/cobra"
)

// FileOptions points a command at a JSON payload, "-" or empty for stdin.
type FileOptions struct {
	File string
}

// AddFileArgs wires the input file flag on the provided command.
func AddFileArgs(cmd *cobra.Command, o *FileOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		"Read the payload from this file instead of stdin.")
}
