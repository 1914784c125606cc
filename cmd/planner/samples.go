package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/planner/internal/samples"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample problems",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, s := range samples.Default().List() {
			fmt.Fprintf(out, "%-8s %s\n", s.Name, s.Description)

			keys := make([]string, 0, len(s.Defaults))
			for k := range s.Defaults {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			params := make([]string, len(keys))
			for i, k := range keys {
				params[i] = fmt.Sprintf("%s=%v", k, s.Defaults[k])
			}
			fmt.Fprintf(out, "         params: %s\n", strings.Join(params, " "))
			if s.DefaultHeuristic != "" {
				fmt.Fprintf(out, "         heuristic: %s\n", s.DefaultHeuristic)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
