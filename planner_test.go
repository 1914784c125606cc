package planner_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/heuristic"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingStore struct {
	*memory.Store
	closed bool
}

func (s *closingStore) Close() error {
	s.closed = true
	return nil
}

func TestEngine_Defaults(t *testing.T) {
	eng := planner.New()
	assert.Equal(t, domain.BreadthFirst, eng.Strategy())

	p := rooms()
	res, err := eng.Solve(context.Background(), p)
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	assert.NoError(t, res.Plan.Verify(p.Init, p.Goal))
}

func TestEngine_StoreFactory(t *testing.T) {
	t.Run("Closes Store", func(t *testing.T) {
		store := &closingStore{Store: memory.NewStore()}
		eng := planner.New(planner.WithStoreFactory(func(context.Context) (ports.NodeStore, error) {
			return store, nil
		}))

		res, err := eng.Solve(context.Background(), rooms())
		require.NoError(t, err)
		assert.True(t, res.Succeeded())
		assert.True(t, store.closed)
	})

	t.Run("Factory Error", func(t *testing.T) {
		boom := errors.New("boom")
		eng := planner.New(planner.WithStoreFactory(func(context.Context) (ports.NodeStore, error) {
			return nil, boom
		}))

		_, err := eng.Solve(context.Background(), rooms())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Capacity", func(t *testing.T) {
		eng := planner.New(planner.WithStoreFactory(func(context.Context) (ports.NodeStore, error) {
			return memory.NewStore(memory.WithCapacity(2)), nil
		}))

		res, err := eng.Solve(context.Background(), rooms())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, res.Status)
		assert.Positive(t, res.Stats.Dropped)
	})
}

func TestEngine_Options(t *testing.T) {
	var starts, ends int
	count := domain.LifecycleHooks{
		OnSearchStart: func(context.Context, *domain.SearchEvent) { starts++ },
		OnSearchEnd:   func(context.Context, *domain.SearchEvent) { ends++ },
	}

	eng := planner.New(
		planner.WithStrategy(domain.Greedy),
		planner.WithHeuristic(heuristic.NewHAdd),
		planner.WithWeight(2),
		planner.WithTimeout(time.Minute),
		planner.WithLifecycleHooks(count),
		planner.WithLifecycleHooks(count),
	)
	assert.Equal(t, domain.Greedy, eng.Strategy())

	res, err := eng.Solve(context.Background(), rooms())
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, 2, starts, "hooks registered twice are both called")
	assert.Equal(t, 2, ends)
}

func TestEngine_InvalidInput(t *testing.T) {
	_, err := planner.New().Solve(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProblem)

	_, err = planner.New(planner.WithStrategy("beam")).Solve(context.Background(), rooms())
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)

	_, err = planner.New(planner.WithMaxNodes(-1)).Solve(context.Background(), rooms())
	assert.Error(t, err)
}

func TestEngine_Concurrent(t *testing.T) {
	eng := planner.New(planner.WithStrategy(domain.BestFirst))
	p := rooms()

	var wg sync.WaitGroup
	plans := make([][]string, 8)
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := eng.Solve(context.Background(), p)
			if err == nil && res.Succeeded() {
				plans[i] = res.Plan.Names()
			}
		}(i)
	}
	wg.Wait()

	for _, plan := range plans {
		assert.Equal(t, []string{"move(A,C)", "move(C,D)"}, plan)
	}
}
