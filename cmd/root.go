package cmd

import (
	"fmt"
	"os"

	"songvault/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "songvault",
	Short: "SongVault is a song library metadata service.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
