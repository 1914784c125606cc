package ports

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreFactory returns a fresh, empty store. A capacity of 0 means unbounded.
type StoreFactory func(t *testing.T, capacity int) NodeStore

// RunNodeStoreContract runs a suite of tests to verify that a NodeStore implementation
// adheres to the defined interface contract.
func RunNodeStoreContract(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()

	at := func(x string) domain.Fact { return domain.NewFact("at", x) }
	step := func(from, to string) domain.GroundAction {
		return domain.GroundAction{
			Schema: "move",
			Args:   []string{from, to},
			Pre:    []domain.Fact{at(from)},
			Add:    []domain.Fact{at(to)},
			Del:    []domain.Fact{at(from)},
			Cost:   1,
		}
	}
	// chain builds root at(A) -> at(B) -> at(C).
	chain := func(t *testing.T) []*domain.Node {
		root := domain.NewRoot(domain.NewState(at("A"), domain.NewFact("lit", "A")), 2)
		nodes := []*domain.Node{root}
		for _, hop := range [][2]string{{"A", "B"}, {"B", "C"}} {
			parent := nodes[len(nodes)-1]
			a := step(hop[0], hop[1])
			next, err := domain.Apply(parent.State, a)
			require.NoError(t, err)
			nodes = append(nodes, parent.Child(next, a, 0))
		}
		return nodes
	}

	t.Run("Insert and Lookup", func(t *testing.T) {
		store := newStore(t, 0)
		nodes := chain(t)
		for _, n := range nodes {
			require.NoError(t, store.Insert(ctx, n))
		}

		got, ok, err := store.Lookup(ctx, nodes[1].State)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.State.Equal(nodes[1].State))
		assert.Equal(t, nodes[0].Key(), got.Parent)
		assert.Equal(t, 1.0, got.Cost)
		assert.Equal(t, 1, got.Depth)
		require.NotNil(t, got.Action)
		assert.Equal(t, "move(A,B)", got.Action.Name())
		assert.Len(t, got.Action.Pre, 1)

		root, ok, err := store.Lookup(ctx, nodes[0].State)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Nil(t, root.Action)
		assert.Equal(t, 2.0, root.Estimate)

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Lookup Missing", func(t *testing.T) {
		store := newStore(t, 0)
		got, ok, err := store.Lookup(ctx, domain.NewState(at("Z")))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Duplicate Insert", func(t *testing.T) {
		store := newStore(t, 0)
		root := domain.NewRoot(domain.NewState(at("A"), at("B")), 0)
		require.NoError(t, store.Insert(ctx, root))

		// Equal state, different construction order.
		again := domain.NewRoot(domain.NewState(at("B"), at("A")), 5)
		err := store.Insert(ctx, again)
		assert.ErrorIs(t, err, domain.ErrDuplicateNode)

		got, ok, err := store.Lookup(ctx, again.State)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0.0, got.Estimate, "first visit wins")

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Reconstruct Path", func(t *testing.T) {
		store := newStore(t, 0)
		nodes := chain(t)
		for _, n := range nodes {
			require.NoError(t, store.Insert(ctx, n))
		}

		path, err := store.ReconstructPath(ctx, nodes[2])
		require.NoError(t, err)
		require.Len(t, path, 3)
		assert.Nil(t, path[0].Action, "root step has no action")
		assert.True(t, path[0].State.Equal(nodes[0].State))
		assert.Equal(t, "move(A,B)", path[1].Action.Name())
		assert.Equal(t, "move(B,C)", path[2].Action.Name())
		assert.True(t, path[2].State.Equal(nodes[2].State))

		rootOnly, err := store.ReconstructPath(ctx, nodes[0])
		require.NoError(t, err)
		assert.Len(t, rootOnly, 1)
	})

	t.Run("Reconstruct Path With Missing Parent", func(t *testing.T) {
		store := newStore(t, 0)
		nodes := chain(t)
		require.NoError(t, store.Insert(ctx, nodes[2]))

		_, err := store.ReconstructPath(ctx, nodes[2])
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("Capacity", func(t *testing.T) {
		store := newStore(t, 2)
		nodes := chain(t)
		require.NoError(t, store.Insert(ctx, nodes[0]))
		require.NoError(t, store.Insert(ctx, nodes[1]))

		err := store.Insert(ctx, nodes[2])
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

		err = store.Insert(ctx, nodes[1])
		assert.ErrorIs(t, err, domain.ErrDuplicateNode, "duplicates are reported before capacity")

		_, ok, err := store.Lookup(ctx, nodes[2].State)
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Concurrent Insert First Writer Wins", func(t *testing.T) {
		store := newStore(t, 0)
		const writers = 8

		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			wins       int
			dups       int
			unexpected []error
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				n := domain.NewRoot(domain.NewState(at("shared")), float64(i))
				err := store.Insert(ctx, n)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case errors.Is(err, domain.ErrDuplicateNode):
					dups++
				default:
					unexpected = append(unexpected, err)
				}
			}(i)
		}
		wg.Wait()

		assert.Empty(t, unexpected)
		assert.Equal(t, 1, wins)
		assert.Equal(t, writers-1, dups)
	})
}
