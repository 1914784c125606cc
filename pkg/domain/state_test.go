package domain_test

import (
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x string) domain.Fact { return domain.NewFact("at", x) }

func move(from, to string) domain.GroundAction {
	return domain.GroundAction{
		Schema: "move",
		Args:   []string{from, to},
		Pre:    []domain.Fact{at(from)},
		Add:    []domain.Fact{at(to)},
		Del:    []domain.Fact{at(from)},
		Cost:   1,
	}
}

func TestFact(t *testing.T) {
	f := domain.NewFact("at", "robot1", "roomA")
	assert.Equal(t, "at(robot1,roomA)", f.Key())
	assert.Equal(t, 2, f.Arity())
	assert.True(t, f.IsGround())
	assert.True(t, f.Equal(domain.NewFact("at", "robot1", "roomA")))
	assert.False(t, f.Equal(domain.NewFact("at", "roomA", "robot1")))

	t.Run("Args are copied", func(t *testing.T) {
		args := []string{"a", "b"}
		g := domain.NewFact("link", args...)
		args[0] = "z"
		assert.Equal(t, "link(a,b)", g.Key())

		out := g.Args()
		out[1] = "z"
		assert.Equal(t, "b", g.Arg(1))
	})

	t.Run("Bind", func(t *testing.T) {
		v := domain.NewFact("at", domain.Var("x"), "roomA")
		assert.False(t, v.IsGround())
		assert.Equal(t, []string{"?x"}, v.Vars())

		bound := v.Bind(domain.Binding{"?x": "robot1"})
		assert.True(t, bound.IsGround())
		assert.True(t, bound.Equal(f))

		partial := domain.NewFact("p", "?x", "?y").Bind(domain.Binding{"?x": "a"})
		assert.Equal(t, "p(a,?y)", partial.Key())
	})

	t.Run("Parse", func(t *testing.T) {
		p, err := domain.ParseFact(" at( robot1 , roomA ) ")
		require.NoError(t, err)
		assert.True(t, p.Equal(f))

		nullary, err := domain.ParseFact("handempty()")
		require.NoError(t, err)
		assert.Equal(t, 0, nullary.Arity())

		for _, bad := range []string{"", "at", "(a)", "at(a,)"} {
			_, err := domain.ParseFact(bad)
			assert.Error(t, err, bad)
		}
	})
}

func TestFact_ReservedCharacters(t *testing.T) {
	joined := domain.NewFact("p", "a,b")
	split := domain.NewFact("p", "a", "b")

	assert.Equal(t, 1, joined.Arity())
	assert.Equal(t, `p("a,b")`, joined.Key())
	assert.False(t, joined.Equal(split))
	assert.False(t, domain.NewFact("p").Equal(domain.NewFact("p", "")))
	assert.False(t, domain.NewFact("p", "a;b").Equal(domain.NewFact("p", "a);p(b")))

	s := domain.NewState(joined)
	assert.True(t, s.Has(joined))
	assert.False(t, s.Has(split))
	assert.NotEqual(t, s.Key(), domain.NewState(split).Key())

	// Two facts must not collide with one fact whose symbol spells both.
	pair := domain.NewState(domain.NewFact("q", "a"), domain.NewFact("r", "b"))
	single := domain.NewState(domain.NewFact("q", "a);r(b"))
	assert.False(t, pair.Equal(single))

	t.Run("Parse round trip", func(t *testing.T) {
		for _, f := range []domain.Fact{joined, split, domain.NewFact("p", ""), domain.NewFact("say", `"hi", there`)} {
			got, err := domain.ParseFact(f.Key())
			require.NoError(t, err, f.Key())
			assert.True(t, got.Equal(f), f.Key())
			assert.Equal(t, f.Arity(), got.Arity())
		}

		_, err := domain.ParseFact(`p("a,b)`)
		assert.Error(t, err)
		_, err = domain.ParseFact(`p(a;b)`)
		assert.Error(t, err)
	})
}

func TestState_Equality(t *testing.T) {
	s1 := domain.NewState(at("A"), domain.NewFact("clear", "B"))
	s2 := domain.NewState(domain.NewFact("clear", "B"), at("A"), at("A"))

	assert.True(t, s1.Equal(s2), "construction order and duplicates must not matter")
	assert.Equal(t, s1.Key(), s2.Key())
	assert.Equal(t, 2, s2.Len())
	assert.Equal(t, "{}", domain.State{}.Key())
	assert.True(t, domain.NewState().Equal(domain.State{}))

	facts := s2.Facts()
	require.Len(t, facts, 2)
	assert.Equal(t, "at(A)", facts[0].Key())
	assert.Equal(t, "clear(B)", facts[1].Key())
}

func TestState_NonGround(t *testing.T) {
	_, err := domain.NewStateChecked(domain.NewFact("at", "?x"))
	assert.ErrorIs(t, err, domain.ErrInvalidProblem)

	assert.Panics(t, func() { domain.NewState(domain.NewFact("at", "?x")) })
}

func TestApply(t *testing.T) {
	s := domain.NewState(at("A"), domain.NewFact("door", "A", "B"))
	before := s.Key()

	next, err := domain.Apply(s, move("A", "B"))
	require.NoError(t, err)

	assert.True(t, next.Has(at("B")))
	assert.False(t, next.Has(at("A")), "deleted facts must be gone")
	assert.True(t, next.Has(domain.NewFact("door", "A", "B")), "untouched facts carry over")

	assert.Equal(t, before, s.Key(), "apply must not mutate its input")
	assert.True(t, s.Has(at("A")))
	assert.False(t, s.Has(at("B")))
}

func TestApply_AddWinsOverDelete(t *testing.T) {
	stay := domain.GroundAction{
		Schema: "stay",
		Pre:    []domain.Fact{at("A")},
		Add:    []domain.Fact{at("A")},
		Del:    []domain.Fact{at("A")},
	}
	next, err := domain.Apply(domain.NewState(at("A")), stay)
	require.NoError(t, err)
	assert.True(t, next.Has(at("A")))
}

func TestApply_InvalidTransition(t *testing.T) {
	s := domain.NewState(at("A"))
	a := move("B", "C")

	assert.False(t, domain.Applicable(s, a))
	_, err := domain.Apply(s, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "move(B,C)")
}

func TestSatisfiesGoal(t *testing.T) {
	s := domain.NewState(at("C"), domain.NewFact("lit", "C"))

	assert.True(t, domain.SatisfiesGoal(s, nil), "empty goal is trivially satisfied")
	assert.True(t, domain.SatisfiesGoal(s, domain.Goal{at("C")}))
	assert.False(t, domain.SatisfiesGoal(s, domain.Goal{at("C"), at("D")}))

	missing := domain.Goal{at("C"), at("D")}.Unsatisfied(s)
	require.Len(t, missing, 1)
	assert.Equal(t, "at(D)", missing[0].Key())
}
