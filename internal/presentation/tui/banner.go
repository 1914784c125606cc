package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the planner banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"        _                             ", "#34d399"},
		{"  _ __ | | __ _ _ __  _ __   ___ _ __ ", "#2dd4bf"},
		{" | '_ \\| |/ _` | '_ \\| '_ \\ / _ \\ '__|", "#22d3ee"},
		{" | |_) | | (_| | | | | | | |  __/ |   ", "#38bdf8"},
		{" | .__/|_|\\__,_|_| |_|_| |_|\\___|_|   ", "#60a5fa"},
		{" |_|                                  ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status renders a search status in the color profile of w:
// green for success, yellow for an aborted search and red for failure.
func Status(w io.Writer, status domain.SearchStatus) string {
	p := termenv.NewOutput(w).ColorProfile()
	color := "#f87171"
	switch status {
	case domain.StatusSucceeded:
		color = "#4ade80"
	case domain.StatusAborted:
		color = "#facc15"
	}
	return p.String(string(status)).Foreground(p.Color(color)).Bold().String()
}
