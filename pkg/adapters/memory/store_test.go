package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunNodeStoreContract(t, func(t *testing.T, capacity int) ports.NodeStore {
		return memory.NewStore(memory.WithCapacity(capacity))
	})
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	root := domain.NewRoot(domain.NewState(domain.NewFact("at", "A")), 1)
	require.NoError(t, store.Insert(ctx, root))
	root.Estimate = 99

	got, ok, err := store.Lookup(ctx, root.State)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Estimate)

	got.Cost = 42
	again, _, _ := store.Lookup(ctx, root.State)
	assert.Equal(t, 0.0, again.Cost)
}

func TestMemoryStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Insert(ctx, domain.NewRoot(domain.NewState(), 0)))

	store.Reset()
	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
