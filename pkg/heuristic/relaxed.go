package heuristic

import (
	"math"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// relaxed computes fact costs in the delete relaxation of a grounded problem:
// delete effects are ignored and the cost of reaching a set of facts is
// aggregated with combine (max for h_max, sum for h_add).
type relaxed struct {
	actions []relaxedAction
	combine func(acc, c float64) float64
}

type relaxedAction struct {
	pre  []string
	add  []string
	cost float64
}

// NewHMax builds the h_max heuristic: the most expensive goal fact in the relaxed problem.
// It never overestimates. Best-first search still keeps the cost of the first path that
// reaches a state, so plans are not guaranteed to be cost-optimal.
func NewHMax(g *domain.Grounding) (ports.Heuristic, error) {
	return newRelaxed(g, math.Max), nil
}

// NewHAdd builds the h_add heuristic: the sum of relaxed goal fact costs.
// More informed than h_max but not admissible.
func NewHAdd(g *domain.Grounding) (ports.Heuristic, error) {
	return newRelaxed(g, func(acc, c float64) float64 { return acc + c }), nil
}

func newRelaxed(g *domain.Grounding, combine func(acc, c float64) float64) *relaxed {
	r := &relaxed{combine: combine}
	for _, a := range g.Actions() {
		ra := relaxedAction{cost: a.Cost}
		for _, f := range a.Pre {
			ra.pre = append(ra.pre, f.Key())
		}
		for _, f := range a.Add {
			ra.add = append(ra.add, f.Key())
		}
		r.actions = append(r.actions, ra)
	}
	return r
}

// Estimate returns +Inf when some goal fact is unreachable even without deletes.
func (r *relaxed) Estimate(s domain.State, goal domain.Goal) float64 {
	if domain.SatisfiesGoal(s, goal) {
		return 0
	}

	cost := make(map[string]float64, s.Len())
	for _, f := range s.Facts() {
		cost[f.Key()] = 0
	}

	// Fixpoint over the ground actions. Costs only decrease, so this terminates.
	for changed := true; changed; {
		changed = false
		for _, a := range r.actions {
			c, ok := r.aggregate(cost, a.pre)
			if !ok {
				continue
			}
			c += a.cost
			for _, k := range a.add {
				if old, seen := cost[k]; !seen || c < old {
					cost[k] = c
					changed = true
				}
			}
		}
	}

	keys := make([]string, len(goal))
	for i, f := range goal {
		keys[i] = f.Key()
	}
	h, ok := r.aggregate(cost, keys)
	if !ok {
		return math.Inf(1)
	}
	return h
}

func (r *relaxed) aggregate(cost map[string]float64, keys []string) (float64, bool) {
	acc := 0.0
	for _, k := range keys {
		c, ok := cost[k]
		if !ok {
			return 0, false
		}
		acc = r.combine(acc, c)
	}
	return acc, true
}
