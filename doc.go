/*
Package planner is a STRIPS state-space search engine: given facts about an initial world,
parameterised action schemas and a goal, it finds a sequence of ground actions that reaches
the goal.

It implements a "Search Controller with Pluggable Node Stores" architecture, separating the
problem model (Facts, States, Schemas) from the search loop (Frontier) and from the memory of
visited states (NodeStore).

# Concept

A Problem is grounded once into every applicable action instance. The controller then pops
nodes from a frontier ordered by the chosen strategy, tests them against the goal and inserts
unseen successors into the node store, which remembers every state it has ever generated.
Plans are rebuilt by walking parent links back to the root.

# Key Features

  - Deterministic Search: Given the same problem and strategy, the same plan is returned.
  - Strategies: breadth-first, depth-first, best-first (A* and weighted A*) and greedy best-first.
  - Heuristics: zero, goal count, h_max and h_add, or any ports.Heuristic of your own.
  - Node Stores: in-memory by default; Redis and BadgerDB adapters for spaces that outgrow RAM.
  - Budgets: node and time limits and context cancellation abort the search cleanly.
  - Observability: lifecycle hooks feed slog logging and Prometheus metrics.

# Usage

Build a problem with the dsl package (or domain types directly) and solve it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/planner"
		"github.com/aretw0/planner/pkg/domain"
		"github.com/aretw0/planner/pkg/dsl"
		"github.com/aretw0/planner/pkg/heuristic"
	)

	func main() {
		b := dsl.New("rooms")
		b.Objects("room", "A", "B", "C")
		b.Action("move").
			Params("x:room", "y:room").
			Pre("at(?x)", "door(?x,?y)").
			Add("at(?y)").
			Del("at(?x)")
		b.Init("at(A)", "door(A,B)", "door(B,C)").Goal("at(C)")

		problem, err := b.Build()
		if err != nil {
			log.Fatal(err)
		}

		eng := planner.New(
			planner.WithStrategy(domain.BestFirst),
			planner.WithHeuristic(heuristic.NewHMax),
		)
		res, err := eng.Solve(context.Background(), problem)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res)
	}
*/
package planner
