package domain

import (
	"fmt"
	"strings"
	"time"
)

// SearchStatus is the lifecycle state of one search run.
type SearchStatus string

const (
	StatusReady     SearchStatus = "READY"     // Problem accepted, nothing expanded yet
	StatusRunning   SearchStatus = "RUNNING"   // Frontier being expanded
	StatusSucceeded SearchStatus = "SUCCEEDED" // Goal reached, plan available
	StatusFailed    SearchStatus = "FAILED"    // Exhausted without reaching the goal
	StatusAborted   SearchStatus = "ABORTED"   // Stopped early; search was not exhaustive
)

// AbortReason distinguishes why a search was aborted.
type AbortReason string

const (
	ReasonNone         AbortReason = ""
	ReasonCanceled     AbortReason = "canceled"
	ReasonDeadline     AbortReason = "deadline"
	ReasonNodeBudget   AbortReason = "node_budget"
	ReasonStoreFailure AbortReason = "store_failure"
)

// Strategy selects the frontier ordering policy.
type Strategy string

const (
	BreadthFirst Strategy = "breadth_first" // FIFO
	DepthFirst   Strategy = "depth_first"   // LIFO
	BestFirst    Strategy = "best_first"    // g + w·h; g is fixed at first discovery
	Greedy       Strategy = "greedy"        // h only
)

// Strategies lists the supported strategies.
func Strategies() []Strategy {
	return []Strategy{BreadthFirst, DepthFirst, BestFirst, Greedy}
}

// ParseStrategy accepts the canonical names plus the usual short aliases.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth", string(BreadthFirst):
		return BreadthFirst, nil
	case "dfs", "depth", string(DepthFirst):
		return DepthFirst, nil
	case "astar", "a*", "best", string(BestFirst):
		return BestFirst, nil
	case "gbfs", string(Greedy):
		return Greedy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Stats counts the work done by one search.
type Stats struct {
	Expanded    int           `json:"expanded"`
	Generated   int           `json:"generated"`
	Duplicates  int           `json:"duplicates"`
	Dropped     int           `json:"dropped"`
	MaxFrontier int           `json:"max_frontier"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Result is the discriminated outcome of a search.
// Plan is set only when Status is StatusSucceeded; Reason only when StatusAborted.
// Err carries the cause for FAILED-at-validation (ErrUnreachableGoal) and store failures.
type Result struct {
	Status SearchStatus `json:"status"`
	Plan   *Plan        `json:"plan,omitempty"`
	Reason AbortReason  `json:"reason,omitempty"`
	Err    error        `json:"-"`
	Stats  Stats        `json:"stats"`
}

// Succeeded reports whether a plan was found.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSucceeded
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	switch r.Status {
	case StatusSucceeded:
		return fmt.Sprintf("%s %s", r.Status, r.Plan)
	case StatusAborted:
		return fmt.Sprintf("%s (%s)", r.Status, r.Reason)
	}
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Status, r.Err)
	}
	return string(r.Status)
}
