package cmd

import (
	"songvault/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the SongVault HTTP server",
	Long:  `Start the SongVault HTTP server, serving the songs API and the web UI.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
