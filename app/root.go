// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drisavo-backend",
	Short: "drisavo-backend is the API for the drisavo driving-school website",
	Long: `drisavo-backend serves the REST API for the drisavo website:
public services and content, contact inquiries, and the admin panel
with its dashboard statistics.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
