package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/internal/presentation/graph"
	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/aretw0/planner/internal/samples"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/spf13/cobra"
)

const exitNoPlan = 2

var solveCmd = &cobra.Command{
	Use:   "solve <sample>",
	Short: "Solve a built-in sample problem",
	Long: `Builds the named sample (see 'planner samples'), searches for a plan and prints it.
The exit code is 0 when a plan was found and 2 when the search failed or was aborted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if code := runSolve(cmd, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

func runSolve(cmd *cobra.Command, name string) int {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	logger := newLogger(cfg)

	sample, err := samples.Default().Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	rawParams, _ := cmd.Flags().GetStringArray("param")
	params, err := parseParams(rawParams)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	problem, err := sample.Build(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building problem: %v\n", err)
		return 1
	}

	if cfg.Heuristic == "" {
		cfg.Heuristic = sample.DefaultHeuristic
	}
	opts, err := cfg.EngineOptions(sample.Heuristic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	stores, err := config.OpenStores(cfg.Store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening node store: %v\n", err)
		return 1
	}
	defer stores.Close()

	opts = append(opts,
		planner.WithLogger(logger),
		planner.WithStoreFactory(stores.Factory()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := planner.New(opts...).Solve(ctx, problem)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	format, _ := cmd.Flags().GetString("format")
	if err := printResult(cmd.OutOrStdout(), format, problem, res); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !res.Succeeded() {
		return exitNoPlan
	}
	return 0
}

func init() {
	rootCmd.AddCommand(solveCmd)
	addSearchFlags(solveCmd)
	solveCmd.Flags().StringP("format", "f", "text", "Output format: text, json, markdown, mermaid")
	solveCmd.Flags().StringArrayP("param", "p", nil, "Sample parameter as key=value (repeatable)")
}

// parseParams turns key=value pairs into a parameter map. Values stay strings;
// samples decode them into their own types.
func parseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return params, nil
}

func printResult(w io.Writer, format string, problem *domain.Problem, res *domain.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Problem string `json:"problem"`
			*domain.Result
			Plan  []string `json:"plan,omitempty"`
			Error string   `json:"error,omitempty"`
		}{
			Problem: problem.Name,
			Result:  res,
			Plan:    res.Plan.Names(),
			Error:   errString(res.Err),
		})

	case "markdown":
		md := tui.Markdown(problem.Name, res)
		if !tui.IsTerminal(os.Stdout) {
			_, err := io.WriteString(w, md)
			return err
		}
		render, err := tui.NewRenderer(tui.Width(os.Stdout), true)
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err

	case "mermaid":
		if !res.Succeeded() {
			return fmt.Errorf("no plan to render: %s", res)
		}
		_, err := io.WriteString(w, graph.GenerateMermaid(problem.Init, res.Plan, graph.Options{}))
		return err

	case "text", "":
		fmt.Fprintf(w, "%s: %s\n", problem.Name, tui.Status(w, res.Status))
		if res.Reason != domain.ReasonNone {
			fmt.Fprintf(w, "reason: %s\n", res.Reason)
		}
		if res.Err != nil {
			fmt.Fprintf(w, "error: %v\n", res.Err)
		}
		for i, a := range res.Plan.Actions() {
			fmt.Fprintf(w, "%3d. %s\n", i+1, a.Name())
		}
		if res.Plan != nil {
			fmt.Fprintf(w, "cost: %g\n", res.Plan.Cost)
		}
		s := res.Stats
		fmt.Fprintf(w, "expanded=%d generated=%d duplicates=%d dropped=%d max_frontier=%d elapsed=%s\n",
			s.Expanded, s.Generated, s.Duplicates, s.Dropped, s.MaxFrontier, s.Elapsed)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
