package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWidth = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or 80 when it is not a terminal.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// NewRenderer returns a function that renders markdown using glamour.
// Styled output detects a light or dark background; otherwise the plain notty style is used.
func NewRenderer(width int, styled bool) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// Markdown describes a search result as a markdown document.
func Markdown(problem string, res *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", problem)
	fmt.Fprintf(&sb, "**Status:** %s", res.Status)
	if res.Reason != domain.ReasonNone {
		fmt.Fprintf(&sb, " (%s)", res.Reason)
	}
	sb.WriteString("\n\n")
	if res.Err != nil {
		fmt.Fprintf(&sb, "> %v\n\n", res.Err)
	}

	if res.Plan != nil {
		fmt.Fprintf(&sb, "## Plan\n\n%d steps, cost %g\n\n", res.Plan.Len(), res.Plan.Cost)
		for i, a := range res.Plan.Actions() {
			fmt.Fprintf(&sb, "%d. `%s`\n", i+1, a.Name())
		}
		sb.WriteString("\n")
	}

	s := res.Stats
	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Expanded | Generated | Duplicates | Dropped | Max frontier | Elapsed |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %s |\n",
		s.Expanded, s.Generated, s.Duplicates, s.Dropped, s.MaxFrontier, s.Elapsed.Round(time.Microsecond))
	return sb.String()
}
