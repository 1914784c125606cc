package memory

import (
	"context"
	"sync"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// Option configures the Store.
type Option func(*Store)

// WithCapacity bounds the number of nodes. Inserts beyond it fail with
// domain.ErrCapacityExceeded. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// Store implements ports.NodeStore in memory, keyed by canonical state key.
// Safe for concurrent use.
type Store struct {
	data     map[string]*domain.Node
	capacity int
	mu       sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]*domain.Node),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the node stored for the state.
func (s *Store) Lookup(ctx context.Context, state domain.State) (*domain.Node, bool, error) {
	return s.get(ctx, state.Key())
}

func (s *Store) get(_ context.Context, key string) (*domain.Node, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy on read so callers can't rewrite the stored entry through the pointer.
	ret := *n
	return &ret, true, nil
}

// Insert registers the node. First writer wins.
func (s *Store) Insert(ctx context.Context, node *domain.Node) error {
	key := node.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return domain.ErrDuplicateNode
	}
	if s.capacity > 0 && len(s.data) >= s.capacity {
		return domain.ErrCapacityExceeded
	}
	copied := *node
	s.data[key] = &copied
	return nil
}

// ReconstructPath follows parent keys back to the root.
func (s *Store) ReconstructPath(ctx context.Context, node *domain.Node) ([]domain.PathStep, error) {
	return ports.WalkPath(ctx, node, s.get)
}

// Len returns the number of stored nodes.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// Reset drops every node, so the store can back another search.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.Node)
}
