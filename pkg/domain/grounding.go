package domain

import (
	"fmt"
	"sort"
)

// Grounding is the eagerly grounded form of a Problem.
//
// Every schema is grounded once, up front. Peak memory is proportional to the
// number of ground actions kept; in exchange each expansion only tests the
// actions indexed under facts present in the state.
type Grounding struct {
	problem *Problem
	actions []GroundAction

	// byPre indexes each action under its first precondition.
	byPre map[string][]int
	// always holds actions without preconditions.
	always []int

	producible map[string]bool
	static     map[string]bool
}

// GroundProblem grounds every schema of the problem against its objects.
//
// Ground actions whose preconditions mention a static predicate (one that no schema
// adds or deletes) that is false in the initial state can never fire and are dropped.
// Order is schema order, then Ground order, so the result is deterministic.
func GroundProblem(p *Problem) (*Grounding, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil problem", ErrInvalidProblem)
	}

	static := staticPredicates(p.Schemas)
	g := &Grounding{
		problem:    p,
		byPre:      make(map[string][]int),
		producible: make(map[string]bool),
		static:     static,
	}

	for _, f := range p.Init.Facts() {
		g.producible[f.Key()] = true
	}

	for _, schema := range p.Schemas {
		actions, err := Ground(schema, p.Objects)
		if err != nil {
			return nil, fmt.Errorf("failed to ground %s: %w", schema.Name, err)
		}
		for _, a := range actions {
			if !staticallyApplicable(a, static, p.Init) {
				continue
			}
			i := len(g.actions)
			g.actions = append(g.actions, a)
			if len(a.Pre) == 0 {
				g.always = append(g.always, i)
			} else {
				k := a.Pre[0].Key()
				g.byPre[k] = append(g.byPre[k], i)
			}
			for _, ad := range a.Add {
				g.producible[ad.Key()] = true
			}
		}
	}
	return g, nil
}

func staticPredicates(schemas []Schema) map[string]bool {
	used := make(map[string]bool)
	changed := make(map[string]bool)
	for _, s := range schemas {
		for _, f := range s.Pre {
			used[f.Name()] = true
		}
		for _, f := range s.Add {
			changed[f.Name()] = true
		}
		for _, f := range s.Del {
			changed[f.Name()] = true
		}
	}
	static := make(map[string]bool)
	for name := range used {
		if !changed[name] {
			static[name] = true
		}
	}
	return static
}

func staticallyApplicable(a GroundAction, static map[string]bool, init State) bool {
	for _, p := range a.Pre {
		if static[p.Name()] && !init.Has(p) {
			return false
		}
	}
	return true
}

// Problem returns the grounded problem.
func (g *Grounding) Problem() *Problem { return g.problem }

// Actions returns every kept ground action in grounding order.
func (g *Grounding) Actions() []GroundAction {
	out := make([]GroundAction, len(g.actions))
	copy(out, g.actions)
	return out
}

// Len returns the number of kept ground actions.
func (g *Grounding) Len() int { return len(g.actions) }

// IsStatic reports whether the predicate is never changed by any schema.
func (g *Grounding) IsStatic(predicate string) bool { return g.static[predicate] }

// Producible reports whether the fact holds initially or is added by some ground action.
func (g *Grounding) Producible(f Fact) bool {
	return g.producible[f.Key()]
}

// Applicable returns the actions applicable in s, in grounding order.
func (g *Grounding) Applicable(s State) []GroundAction {
	idx := append([]int(nil), g.always...)
	for k := range s.facts {
		for _, i := range g.byPre[k] {
			if Applicable(s, g.actions[i]) {
				idx = append(idx, i)
			}
		}
	}
	sort.Ints(idx)

	out := make([]GroundAction, len(idx))
	for j, i := range idx {
		out[j] = g.actions[i]
	}
	return out
}
