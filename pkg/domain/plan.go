package domain

import (
	"fmt"
	"strings"
)

// PlanStep is one action of a plan together with the state it produces.
type PlanStep struct {
	Action GroundAction `json:"action"`
	State  State        `json:"-"`
}

// Plan is an ordered sequence of ground actions plus its total cost.
type Plan struct {
	Steps []PlanStep `json:"steps"`
	Cost  float64    `json:"cost"`
}

// Len returns the number of actions.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Steps)
}

// Actions returns the ground actions in execution order.
func (p *Plan) Actions() []GroundAction {
	if p == nil {
		return nil
	}
	out := make([]GroundAction, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Action
	}
	return out
}

// Names returns the rendered action names in execution order.
func (p *Plan) Names() []string {
	acts := p.Actions()
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Name()
	}
	return out
}

// String implements fmt.Stringer.
func (p *Plan) String() string {
	return fmt.Sprintf("[%s] cost=%g", strings.Join(p.Names(), ", "), p.Cost)
}

// Verify replays the plan from init and checks that every step is applicable
// and that the final state satisfies the goal.
func (p *Plan) Verify(init State, goal Goal) error {
	current := init
	for i, a := range p.Actions() {
		next, err := Apply(current, a)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		current = next
	}
	if !SatisfiesGoal(current, goal) {
		return fmt.Errorf("%w: unsatisfied %s", ErrGoalNotReached, Goal(goal.Unsatisfied(current)))
	}
	return nil
}
