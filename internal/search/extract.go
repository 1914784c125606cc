package search

import (
	"context"
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// Extract turns a terminal node into a plan by walking its parent links in the store.
// It fails with domain.ErrNoPlanFound when there is no terminal node.
func Extract(ctx context.Context, node *domain.Node, store ports.NodeStore) (*domain.Plan, error) {
	if node == nil {
		return nil, domain.ErrNoPlanFound
	}

	path, err := store.ReconstructPath(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct path: %w", err)
	}

	plan := &domain.Plan{Steps: make([]domain.PlanStep, 0, len(path))}
	for _, step := range path {
		if step.Action == nil {
			continue // root
		}
		plan.Steps = append(plan.Steps, domain.PlanStep{Action: *step.Action, State: step.State})
		plan.Cost += step.Action.Cost
	}
	return plan, nil
}
