package heuristic_test

import (
	"math"
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x string) domain.Fact { return domain.NewFact("at", x) }

// line grounds a corridor A-B-C-D where the last hop costs 5.
func line(t *testing.T) *domain.Grounding {
	t.Helper()
	move := func(name string, from, to string, cost float64) domain.Schema {
		return domain.Schema{
			Name: name,
			Pre:  []domain.Fact{at(from)},
			Add:  []domain.Fact{at(to)},
			Del:  []domain.Fact{at(from)},
			Cost: cost,
		}
	}
	p := &domain.Problem{
		Name: "line",
		Schemas: []domain.Schema{
			move("ab", "A", "B", 1),
			move("bc", "B", "C", 1),
			move("cd", "C", "D", 5),
		},
		Init: domain.NewState(at("A")),
		Goal: domain.Goal{at("D")},
	}
	g, err := domain.GroundProblem(p)
	require.NoError(t, err)
	return g
}

func TestZeroAndGoalCount(t *testing.T) {
	s := domain.NewState(at("A"), domain.NewFact("lit", "A"))
	goal := domain.Goal{at("A"), at("B"), at("C")}

	assert.Equal(t, 0.0, heuristic.Zero.Estimate(s, goal))
	assert.Equal(t, 2.0, heuristic.GoalCount.Estimate(s, goal))
	assert.Equal(t, 0.0, heuristic.GoalCount.Estimate(s, nil))
}

func TestHMax(t *testing.T) {
	g := line(t)
	h, err := heuristic.NewHMax(g)
	require.NoError(t, err)

	start := g.Problem().Init
	assert.Equal(t, 7.0, h.Estimate(start, domain.Goal{at("D")}))
	assert.Equal(t, 7.0, h.Estimate(start, domain.Goal{at("B"), at("D")}), "max, not sum")
	assert.Equal(t, 0.0, h.Estimate(start, domain.Goal{at("A")}))
	assert.Equal(t, 5.0, h.Estimate(domain.NewState(at("C")), domain.Goal{at("D")}))
}

func TestHAdd(t *testing.T) {
	g := line(t)
	h, err := heuristic.NewHAdd(g)
	require.NoError(t, err)

	start := g.Problem().Init
	assert.Equal(t, 7.0, h.Estimate(start, domain.Goal{at("D")}))
	assert.Equal(t, 9.0, h.Estimate(start, domain.Goal{at("C"), at("D")}))
}

func TestRelaxed_DeadEnd(t *testing.T) {
	g := line(t)
	for _, name := range []string{heuristic.NameHMax, heuristic.NameHAdd} {
		factory, err := heuristic.ByName(name)
		require.NoError(t, err)
		h, err := factory(g)
		require.NoError(t, err)

		// Nothing leaves D.
		assert.True(t, math.IsInf(h.Estimate(domain.NewState(at("D")), domain.Goal{at("A")}), 1), name)
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"goal-count", "hadd", "hmax", "zero"}, heuristic.Names())

	f, err := heuristic.ByName("")
	require.NoError(t, err)
	h, err := f(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Estimate(domain.NewState(), domain.Goal{at("A")}))

	_, err = heuristic.ByName("manhattan")
	assert.ErrorIs(t, err, domain.ErrUnknownHeuristic)
}
