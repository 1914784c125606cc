package domain

import (
	"fmt"
	"sort"
	"strings"
)

// State is an immutable, closed-world snapshot of the world: the set of facts that hold.
// Facts absent from the set are false.
//
// Two states are equal iff their fact sets are equal, regardless of construction order.
type State struct {
	facts map[string]Fact
	key   string
}

// NewState creates a state from ground facts. Duplicates collapse.
// It panics on a non-ground fact; use NewStateChecked for untrusted input.
func NewState(facts ...Fact) State {
	s, err := NewStateChecked(facts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewStateChecked creates a state, rejecting facts that contain variables.
func NewStateChecked(facts ...Fact) (State, error) {
	m := make(map[string]Fact, len(facts))
	for _, f := range facts {
		if !f.IsGround() {
			return State{}, fmt.Errorf("%w: state fact %s is not ground", ErrInvalidProblem, f)
		}
		m[f.Key()] = f
	}
	return newState(m), nil
}

func newState(m map[string]Fact) State {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return State{
		facts: m,
		key:   "{" + strings.Join(keys, ";") + "}",
	}
}

// Has reports whether the fact holds in the state. O(1) average.
func (s State) Has(f Fact) bool {
	_, ok := s.facts[f.Key()]
	return ok
}

// Len returns the number of facts.
func (s State) Len() int { return len(s.facts) }

// Key is the canonical, order-independent identity used for equality and store keys.
func (s State) Key() string {
	if s.key == "" {
		return "{}"
	}
	return s.key
}

// Equal reports structural equality.
func (s State) Equal(other State) bool {
	return s.Key() == other.Key()
}

// Facts returns the facts in canonical order.
func (s State) Facts() []Fact {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Fact, len(keys))
	for i, k := range keys {
		out[i] = s.facts[k]
	}
	return out
}

// String implements fmt.Stringer.
func (s State) String() string {
	return s.Key()
}

// Applicable reports whether every precondition of the action holds in the state.
func Applicable(s State, a GroundAction) bool {
	for _, p := range a.Pre {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Apply computes the successor (s \ Del) ∪ Add. The receiver state is never modified.
// Applying an inapplicable action is a programming error reported as ErrInvalidTransition.
func Apply(s State, a GroundAction) (State, error) {
	if !Applicable(s, a) {
		return State{}, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, a.Name(), s)
	}
	next := make(map[string]Fact, len(s.facts)+len(a.Add))
	for k, f := range s.facts {
		next[k] = f
	}
	for _, d := range a.Del {
		delete(next, d.Key())
	}
	for _, ad := range a.Add {
		next[ad.Key()] = ad
	}
	return newState(next), nil
}

// Goal is a conjunction of facts that must all hold.
type Goal []Fact

// SatisfiesGoal reports whether every goal fact holds in the state.
func SatisfiesGoal(s State, g Goal) bool {
	for _, f := range g {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// Unsatisfied returns the goal facts that do not hold in the state.
func (g Goal) Unsatisfied(s State) []Fact {
	var out []Fact
	for _, f := range g {
		if !s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (g Goal) String() string {
	parts := make([]string, len(g))
	for i, f := range g {
		parts[i] = f.Key()
	}
	return strings.Join(parts, " ∧ ")
}
