package ports

import (
	"context"
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
)

// NodeStore records visited states and their parent links for one search space.
// It is the sole authority on node lifetime and on "already seen" status.
//
// Implementations shared between concurrent searches must make Insert atomic:
// the first writer for a state wins and later writers observe domain.ErrDuplicateNode.
type NodeStore interface {
	// Lookup returns the node registered for the state, if any.
	Lookup(ctx context.Context, state domain.State) (*domain.Node, bool, error)

	// Insert registers a new node keyed by its state.
	// Returns domain.ErrDuplicateNode if the state is already present and
	// domain.ErrCapacityExceeded if a bounded store is full.
	Insert(ctx context.Context, node *domain.Node) error

	// ReconstructPath returns the steps from the root to the given node, root first.
	ReconstructPath(ctx context.Context, node *domain.Node) ([]domain.PathStep, error)

	// Len returns the number of stored nodes.
	Len(ctx context.Context) (int, error)
}

// NodeGetter loads a node by its state key.
type NodeGetter func(ctx context.Context, key string) (*domain.Node, bool, error)

// WalkPath follows parent keys from node back to the root using get and returns
// the path in forward order. Stores that keep nodes by key share this walk.
func WalkPath(ctx context.Context, node *domain.Node, get NodeGetter) ([]domain.PathStep, error) {
	if node == nil {
		return nil, domain.ErrNoPlanFound
	}

	var rev []domain.PathStep
	current := node
	for {
		rev = append(rev, domain.PathStep{Action: current.Action, State: current.State})
		if current.IsRoot() {
			break
		}
		// A well-formed chain is exactly Depth links long.
		if len(rev) > node.Depth {
			return nil, fmt.Errorf("parent chain of %s is longer than its depth %d", node.Key(), node.Depth)
		}
		parent, ok, err := get(ctx, current.Parent)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: parent %s", domain.ErrNodeNotFound, current.Parent)
		}
		current = parent
	}

	path := make([]domain.PathStep, len(rev))
	for i, step := range rev {
		path[len(rev)-1-i] = step
	}
	return path, nil
}
