package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/planner"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of planner",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "planner version %s\n", strings.TrimSpace(planner.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
