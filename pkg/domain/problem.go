package domain

import "fmt"

// Problem bundles everything one search needs. It must not change while a search runs.
type Problem struct {
	Name    string
	Objects []Object
	Schemas []Schema
	Init    State
	Goal    Goal
}

// Validate performs structural checks that do not require grounding.
func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil problem", ErrInvalidProblem)
	}

	seen := make(map[string]bool, len(p.Objects))
	for _, o := range p.Objects {
		if o.Name == "" {
			return fmt.Errorf("%w: object without name", ErrInvalidProblem)
		}
		if IsVar(o.Name) {
			return fmt.Errorf("%w: object %q looks like a variable", ErrInvalidProblem, o.Name)
		}
		if seen[o.Name] {
			return fmt.Errorf("%w: duplicate object %q", ErrInvalidProblem, o.Name)
		}
		seen[o.Name] = true
	}

	names := make(map[string]bool, len(p.Schemas))
	for _, s := range p.Schemas {
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate schema %q", ErrInvalidProblem, s.Name)
		}
		names[s.Name] = true
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProblem, err)
		}
	}

	for _, f := range p.Goal {
		if !f.IsGround() {
			return fmt.Errorf("%w: goal fact %s is not ground", ErrInvalidProblem, f)
		}
	}
	return nil
}

// CheckReachable fails with ErrUnreachableGoal when a goal fact is neither true
// initially nor added by any ground action.
func (g *Grounding) CheckReachable(goal Goal) error {
	var missing []Fact
	for _, f := range goal {
		if !g.Producible(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnreachableGoal, Goal(missing))
	}
	return nil
}
