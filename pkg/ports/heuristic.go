package ports

import "github.com/aretw0/planner/pkg/domain"

// Heuristic estimates the remaining cost from a state to the goal.
//
// Estimates must be non-negative; 0 means "goal satisfied or no information".
// math.Inf(1) marks a state from which the goal is known to be unreachable.
// Admissibility is not required by the interface. States are never re-opened,
// so even an admissible heuristic does not make best-first plans cost-optimal.
type Heuristic interface {
	Estimate(state domain.State, goal domain.Goal) float64
}

// HeuristicFunc adapts a plain function to the Heuristic interface.
type HeuristicFunc func(state domain.State, goal domain.Goal) float64

// Estimate calls f(state, goal).
func (f HeuristicFunc) Estimate(state domain.State, goal domain.Goal) float64 {
	return f(state, goal)
}

// HeuristicFactory builds a heuristic for one grounded problem.
// Heuristics that precompute per-problem tables (relaxed planning graphs) need the grounding.
type HeuristicFactory func(g *domain.Grounding) (Heuristic, error)

// Fixed returns a factory that ignores the grounding and always yields h.
func Fixed(h Heuristic) HeuristicFactory {
	return func(*domain.Grounding) (Heuristic, error) {
		return h, nil
	}
}
