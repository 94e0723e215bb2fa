package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "obsremote",
	Short: "Remote control server for a broadcast studio",
	Long: `obsremote exposes scene switching, source layout, audio mixing and
stream control over a JSON WebSocket protocol, and pushes state-change
notifications to every connected client.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
