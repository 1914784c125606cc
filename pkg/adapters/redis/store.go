package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "planner:nodes:"

// insertScript registers a node atomically.
// KEYS[1] node key, KEYS[2] counter key; ARGV[1] record, ARGV[2] capacity, ARGV[3] ttl in ms.
// Returns 0 on insert, 1 on duplicate, 2 when the namespace is full.
var insertScript = backend.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 1
end
local capacity = tonumber(ARGV[2])
if capacity > 0 and tonumber(redis.call("GET", KEYS[2]) or "0") >= capacity then
	return 2
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ttl)
	redis.call("INCR", KEYS[2])
	redis.call("PEXPIRE", KEYS[2], ttl)
else
	redis.call("SET", KEYS[1], ARGV[1])
	redis.call("INCR", KEYS[2])
end
return 0
`)

// Store implements ports.NodeStore using Redis.
//
// Nodes are JSON records under prefix + sha256(state key). Insert runs as a single
// Lua script, so several searches (or processes) sharing a prefix observe
// first-writer-wins semantics.
type Store struct {
	client   *backend.Client
	prefix   string
	ttl      time.Duration
	capacity int
}

type Option func(*Store)

// WithTTL sets the expiration for stored nodes.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key namespace. Searches that must not share visited
// states need distinct prefixes.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithCapacity bounds the number of nodes per namespace. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(stateKey string) string {
	sum := sha256.Sum256([]byte(stateKey))
	return s.prefix + hex.EncodeToString(sum[:])
}

func (s *Store) countKey() string {
	return s.prefix + "count"
}

// Lookup retrieves the node stored for the state.
func (s *Store) Lookup(ctx context.Context, state domain.State) (*domain.Node, bool, error) {
	return s.get(ctx, state.Key())
}

func (s *Store) get(ctx context.Context, stateKey string) (*domain.Node, bool, error) {
	val, err := s.client.Get(ctx, s.key(stateKey)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get from redis: %w", err)
	}

	node, err := ports.DecodeNode(val)
	if err != nil {
		return nil, false, err
	}
	return node, true, nil
}

// Insert registers the node unless its state is already present or the namespace is full.
func (s *Store) Insert(ctx context.Context, node *domain.Node) error {
	data, err := ports.EncodeNode(node)
	if err != nil {
		return err
	}

	keys := []string{s.key(node.Key()), s.countKey()}
	code, err := insertScript.Run(ctx, s.client, keys, data, s.capacity, s.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to insert into redis: %w", err)
	}

	switch code {
	case 0:
		return nil
	case 1:
		return domain.ErrDuplicateNode
	case 2:
		return domain.ErrCapacityExceeded
	}
	return fmt.Errorf("unexpected insert result %d", code)
}

// ReconstructPath follows parent keys back to the root.
func (s *Store) ReconstructPath(ctx context.Context, node *domain.Node) ([]domain.PathStep, error) {
	return ports.WalkPath(ctx, node, s.get)
}

// Len returns the number of nodes in the namespace.
func (s *Store) Len(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, s.countKey()).Int()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read node count: %w", err)
	}
	return n, nil
}

// Clear deletes every key of the namespace.
func (s *Store) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 256).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 256 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to clear namespace: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan namespace: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to clear namespace: %w", err)
		}
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
