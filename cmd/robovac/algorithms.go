package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac/internal/algo"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the registered navigation strategies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range algo.DefaultRegistry().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
