// Package heuristic provides distance-to-goal estimators for informed search.
//
// Zero is the default; with it best-first search orders nodes by path cost alone.
// GoalCount, HMax and HAdd are classical domain-independent heuristics; HMax is
// admissible, HAdd and GoalCount are not in general.
package heuristic

import (
	"fmt"
	"sort"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

const (
	NameZero      = "zero"
	NameGoalCount = "goal-count"
	NameHMax      = "hmax"
	NameHAdd      = "hadd"
)

// Zero always estimates 0.
var Zero ports.Heuristic = ports.HeuristicFunc(func(domain.State, domain.Goal) float64 {
	return 0
})

// GoalCount estimates the number of goal facts that do not hold yet.
var GoalCount ports.Heuristic = ports.HeuristicFunc(func(s domain.State, g domain.Goal) float64 {
	missing := 0
	for _, f := range g {
		if !s.Has(f) {
			missing++
		}
	}
	return float64(missing)
})

var registry = map[string]ports.HeuristicFactory{
	NameZero:      ports.Fixed(Zero),
	NameGoalCount: ports.Fixed(GoalCount),
	NameHMax:      NewHMax,
	NameHAdd:      NewHAdd,
}

// ByName resolves a heuristic factory. The empty name resolves to zero.
func ByName(name string) (ports.HeuristicFactory, error) {
	if name == "" {
		name = NameZero
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", domain.ErrUnknownHeuristic, name, Names())
	}
	return f, nil
}

// Names lists the registered heuristic names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
