package search_test

import (
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
)

func at(x string) domain.Fact { return domain.NewFact("at", x) }

type edge struct {
	from, to string
	cost     float64
}

// graph builds a single-agent navigation problem over an undirected graph.
// Edges of different costs get their own schema so costs stay per-schema.
func graph(locs []string, edges []edge, from, to string) *domain.Problem {
	objects := make([]domain.Object, len(locs))
	for i, l := range locs {
		objects[i] = domain.Object{Name: l, Type: "room"}
	}

	x, y := domain.Var("x"), domain.Var("y")
	schemas := []domain.Schema{}
	seen := map[float64]bool{}
	facts := []domain.Fact{at(from)}
	for _, e := range edges {
		cost := e.cost
		if cost == 0 {
			cost = 1
		}
		conn := fmt.Sprintf("conn%g", cost)
		name := "move"
		if cost != 1 {
			name = fmt.Sprintf("move%g", cost)
		}
		if !seen[cost] {
			seen[cost] = true
			schemas = append(schemas, domain.Schema{
				Name:   name,
				Params: []domain.Param{{Name: "x", Type: "room"}, {Name: "y", Type: "room"}},
				Pre:    []domain.Fact{at(x), domain.NewFact(conn, x, y)},
				Add:    []domain.Fact{at(y)},
				Del:    []domain.Fact{at(x)},
				Cost:   cost,
			})
		}
		facts = append(facts, domain.NewFact(conn, e.from, e.to), domain.NewFact(conn, e.to, e.from))
	}

	return &domain.Problem{
		Name:    "graph",
		Objects: objects,
		Schemas: schemas,
		Init:    domain.NewState(facts...),
		Goal:    domain.Goal{at(to)},
	}
}

// scenarioA is the A-B-C corridor: initial at(A), goal at(C).
func scenarioA() *domain.Problem {
	return graph([]string{"A", "B", "C"}, []edge{{from: "A", to: "B"}, {from: "B", to: "C"}}, "A", "C")
}

// grid builds an n×n four-connected grid from the top-left to the bottom-right cell.
func grid(n int) *domain.Problem {
	cell := func(i, j int) string { return fmt.Sprintf("c%d_%d", i, j) }
	var locs []string
	var edges []edge
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			locs = append(locs, cell(i, j))
			if j+1 < n {
				edges = append(edges, edge{from: cell(i, j), to: cell(i, j+1)})
			}
			if i+1 < n {
				edges = append(edges, edge{from: cell(i, j), to: cell(i+1, j)})
			}
		}
	}
	return graph(locs, edges, cell(0, 0), cell(n-1, n-1))
}
