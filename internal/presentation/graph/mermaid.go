package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// Options controls plan rendering.
type Options struct {
	// ShowStates labels every state node with its facts instead of its step number.
	ShowStates bool

	// Highlight lists fact predicates to keep in state labels. Empty keeps all.
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart of a plan, one node per visited state.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Goal state: ([Stadium])
// - Intermediate: [Rectangle]
// Edges carry the action name and, when it is not 1, its cost.
func GenerateMermaid(init domain.State, plan *domain.Plan, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	n := plan.Len()
	states := make([]domain.State, 0, n+1)
	states = append(states, init)
	for i := 0; i < n; i++ {
		states = append(states, plan.Steps[i].State)
	}

	for i, s := range states {
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case i == n:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    s%d%s\"%s\"%s\n", i, opener, label(i, s, opts), closer))
	}

	for i := 0; i < n; i++ {
		a := plan.Steps[i].Action
		text := escape(a.Name())
		if a.Cost != 1 {
			text = fmt.Sprintf("%s <br/> cost %g", text, a.Cost)
		}
		sb.WriteString(fmt.Sprintf("    s%d -- \"%s\" --> s%d\n", i, text, i+1))
	}

	if n > 0 {
		sb.WriteString("\n    classDef goal fill:#e8f5e9,stroke:#1b5e20,stroke-width:2px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class s%d goal;\n", n))
	}
	return sb.String()
}

func label(i int, s domain.State, opts Options) string {
	if !opts.ShowStates {
		if i == 0 {
			return "init"
		}
		return fmt.Sprintf("%d", i)
	}

	keep := make(map[string]bool, len(opts.Highlight))
	for _, p := range opts.Highlight {
		keep[p] = true
	}
	var facts []string
	for _, f := range s.Facts() {
		if len(keep) == 0 || keep[f.Name()] {
			facts = append(facts, escape(f.Key()))
		}
	}
	if len(facts) == 0 {
		return "∅"
	}
	return strings.Join(facts, " <br/> ")
}

// escape replaces characters Mermaid treats as syntax inside quoted labels.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
