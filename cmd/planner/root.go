package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Planner is a STRIPS state-space search engine",
	Long: `Planner finds sequences of actions that turn an initial state into one satisfying a goal,
using breadth-first, depth-first, best-first (A*) or greedy search over pluggable node stores.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level debug")
}

// loadConfig reads the configuration file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}

	// Search and store flags exist only on some commands.
	if flags.Lookup("strategy") != nil {
		if flags.Changed("strategy") {
			cfg.Strategy, _ = flags.GetString("strategy")
		}
		if flags.Changed("heuristic") {
			cfg.Heuristic, _ = flags.GetString("heuristic")
		}
		if flags.Changed("weight") {
			cfg.Weight, _ = flags.GetFloat64("weight")
		}
		if flags.Changed("max-nodes") {
			cfg.MaxNodes, _ = flags.GetInt("max-nodes")
		}
		if flags.Changed("timeout") {
			cfg.Timeout, _ = flags.GetDuration("timeout")
		}
	}
	if flags.Lookup("store") != nil {
		if flags.Changed("store") {
			cfg.Store.Kind, _ = flags.GetString("store")
		}
		if flags.Changed("capacity") {
			cfg.Store.Capacity, _ = flags.GetInt("capacity")
		}
		if flags.Changed("redis-addr") {
			cfg.Store.Redis.Addr, _ = flags.GetString("redis-addr")
		}
		if flags.Changed("badger-dir") {
			cfg.Store.Badger.Dir, _ = flags.GetString("badger-dir")
		}
	}
	return cfg, cfg.Validate()
}

// addSearchFlags registers the flags shared by commands that run searches.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("strategy", "s", "", "Search strategy: breadth_first, depth_first, best_first, greedy")
	cmd.Flags().String("heuristic", "", "Heuristic name (defaults to the sample's own)")
	cmd.Flags().Float64("weight", 1, "Heuristic weight for best-first search")
	cmd.Flags().Int("max-nodes", 0, "Abort after this many expansions (0 = unbounded)")
	cmd.Flags().Duration("timeout", 0, "Abort after this much time (0 = none)")

	cmd.Flags().String("store", "", "Node store: memory, redis, badger")
	cmd.Flags().Int("capacity", 0, "Maximum number of stored nodes (0 = unbounded)")
	cmd.Flags().String("redis-addr", "", "Redis address for --store redis")
	cmd.Flags().String("badger-dir", "", "Database directory for --store badger")
}

func newLogger(cfg config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}
