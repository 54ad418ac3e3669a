// Package cli is the radio command line.
package cli

import (
	"github.com/spf13/cobra"
)

// New returns the root command. Without a subcommand it runs the menu.
func New() *cobra.Command {
	o := &runOptions{}

	cmd := &cobra.Command{
		Use:   "radio",
		Short: "Menu for a character LCD with buttons, driving MPD.",
		Example: `
radio
radio --driver sim --debug
radio --retry --config /etc/radio.toml
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	o.addFlags(cmd.Flags())
	addVersion(cmd)
	return cmd
}
