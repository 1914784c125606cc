package domain

// Node is one entry of the search space.
//
// Parent is the key of the parent state (empty for the root). It is a reference, not
// ownership: the node store decides node lifetime and resolves parents on demand.
type Node struct {
	State    State
	Parent   string
	Action   *GroundAction
	Cost     float64
	Estimate float64
	Depth    int
}

// NewRoot creates the root node for an initial state.
func NewRoot(s State, estimate float64) *Node {
	return &Node{
		State:    s,
		Estimate: estimate,
	}
}

// Child creates the successor node reached through action a.
func (n *Node) Child(s State, a GroundAction, estimate float64) *Node {
	act := a
	return &Node{
		State:    s,
		Parent:   n.State.Key(),
		Action:   &act,
		Cost:     n.Cost + a.Cost,
		Estimate: estimate,
		Depth:    n.Depth + 1,
	}
}

// Key returns the store key of the node (its state key).
func (n *Node) Key() string {
	return n.State.Key()
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == ""
}

// PathStep is one element of a reconstructed path: the action taken and the state it led to.
// The first step of a path is the root, with a nil Action.
type PathStep struct {
	Action *GroundAction
	State  State
}
