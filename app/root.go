// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botpanel",
	Short: "botpanel runs a chat bot together with its management dashboard",
	Long: `botpanel runs a Discord bot that answers prefixed text commands
and serves a JSON dashboard API to manage its settings, command catalog
and logs.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
