package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sKeLeTr0n/OBSRemote/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and protocol version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "obsremote %s\nprotocol %.1f\n", version.String(), version.Protocol)
	},
}
