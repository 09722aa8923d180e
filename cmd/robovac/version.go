package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of robovac",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "robovac version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
