/*
Package ports defines the driven ports (interfaces) of the planner.

These interfaces decouple the search controller from storage and guidance
implementations, so the same engine runs against an in-memory map, Redis or an
embedded Badger database, with any heuristic.

# Key Interfaces

  - NodeStore: records visited states and parent links; the authority on "already seen".
  - Heuristic: estimates distance-to-goal for informed strategies.
  - HeuristicFactory: builds a Heuristic once per grounded problem.

RunNodeStoreContract is a reusable test suite every NodeStore adapter must pass.
*/
package ports
