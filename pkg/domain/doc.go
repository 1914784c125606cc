/*
Package domain contains the core domain models of the planner.

It defines the STRIPS vocabulary the search engine works on. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Fact: an atomic ground proposition such as at(robot1, roomA).
  - State: an immutable closed-world set of facts, compared structurally.
  - Schema / GroundAction: parameterised action templates and their bound instances.
  - Grounding: the eager, deterministic grounding of a Problem.
  - Node / Plan / Result: search-space entries and the outcome of a search.
*/
package domain
