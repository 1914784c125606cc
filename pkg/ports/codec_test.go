package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeCodec(t *testing.T) {
	a := domain.GroundAction{
		Schema: "move",
		Args:   []string{"A", "B, C"},
		Pre:    []domain.Fact{domain.NewFact("at", "A")},
		Add:    []domain.Fact{domain.NewFact("at", "B, C")},
		Del:    []domain.Fact{domain.NewFact("at", "A")},
		Cost:   2.5,
	}
	root := domain.NewRoot(domain.NewState(domain.NewFact("at", "A"), domain.NewFact("handempty")), 3)
	next, err := domain.Apply(root.State, a)
	require.NoError(t, err)
	child := root.Child(next, a, 1)

	data, err := ports.EncodeNode(child)
	require.NoError(t, err)

	got, err := ports.DecodeNode(data)
	require.NoError(t, err)
	assert.True(t, got.State.Equal(child.State), "symbols with separators survive")
	assert.Equal(t, child.Parent, got.Parent)
	assert.Equal(t, child.Cost, got.Cost)
	assert.Equal(t, child.Estimate, got.Estimate)
	assert.Equal(t, child.Depth, got.Depth)
	require.NotNil(t, got.Action)
	assert.Equal(t, a.Name(), got.Action.Name())
	assert.True(t, domain.Applicable(root.State, *got.Action))

	rootData, err := ports.EncodeNode(root)
	require.NoError(t, err)
	decodedRoot, err := ports.DecodeNode(rootData)
	require.NoError(t, err)
	assert.Nil(t, decodedRoot.Action)
	assert.True(t, decodedRoot.IsRoot())

	_, err = ports.DecodeNode([]byte("{not json"))
	assert.Error(t, err)
}

func TestWalkPath_Nil(t *testing.T) {
	_, err := ports.WalkPath(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoPlanFound)
}

func TestFixed(t *testing.T) {
	h := ports.HeuristicFunc(func(s domain.State, g domain.Goal) float64 {
		return float64(len(g.Unsatisfied(s)))
	})
	built, err := ports.Fixed(h)(nil)
	require.NoError(t, err)

	goal := domain.Goal{domain.NewFact("at", "C"), domain.NewFact("lit", "C")}
	assert.Equal(t, 2.0, built.Estimate(domain.NewState(), goal))
}
