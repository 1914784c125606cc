package domain

import "errors"

// ErrInvalidTransition is returned when an action is applied to a state where its precondition does not hold.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrUnreachableGoal is returned when no effect in the domain can produce some goal fact.
var ErrUnreachableGoal = errors.New("unreachable goal")

// ErrDuplicateNode is returned by a node store when the state was already discovered.
var ErrDuplicateNode = errors.New("duplicate node")

// ErrCapacityExceeded is returned by a bounded node store that cannot accept more nodes.
var ErrCapacityExceeded = errors.New("node store capacity exceeded")

// ErrNoPlanFound is returned when a plan is requested without a terminal node.
var ErrNoPlanFound = errors.New("no plan found")

// ErrNodeNotFound is returned when a parent link points to a state missing from the store.
var ErrNodeNotFound = errors.New("node not found")

// ErrInvalidProblem is returned for structurally malformed problems.
var ErrInvalidProblem = errors.New("invalid problem")

// ErrInvalidSchema is returned for malformed action schemas.
var ErrInvalidSchema = errors.New("invalid schema")

// ErrGoalNotReached is returned when a replayed plan ends outside the goal.
var ErrGoalNotReached = errors.New("goal not reached")

// ErrUnknownStrategy is returned when a strategy name cannot be resolved.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ErrUnknownHeuristic is returned when a heuristic name cannot be resolved.
var ErrUnknownHeuristic = errors.New("unknown heuristic")
