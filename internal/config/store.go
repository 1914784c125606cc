package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/pkg/adapters/badger"
	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/adapters/redis"
	"github.com/aretw0/planner/pkg/ports"
	badgerdb "github.com/dgraph-io/badger/v4"
	backend "github.com/redis/go-redis/v9"
)

// Stores hands out one node store per search from a shared backend connection.
//
// External backends give every search its own key namespace and clear it when the
// engine closes the store, so concurrent searches never see each other's nodes.
type Stores struct {
	cfg    StoreConfig
	logger *slog.Logger
	run    string
	seq    atomic.Uint64

	client *backend.Client
	db     *badgerdb.DB
}

// OpenStores connects to the configured backend.
func OpenStores(cfg StoreConfig, logger *slog.Logger) (*Stores, error) {
	s := &Stores{
		cfg:    cfg,
		logger: logger,
		run:    fmt.Sprintf("%x", time.Now().UnixNano()),
	}

	switch cfg.Kind {
	case "", StoreMemory:
	case StoreRedis:
		s.client = backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case StoreBadger:
		db, err := badger.Open(badger.Config{
			Path:       cfg.Badger.Dir,
			InMemory:   cfg.Badger.InMemory,
			SyncWrites: cfg.Badger.SyncWrites,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		s.db = db
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
	return s, nil
}

// Kind returns the configured backend kind.
func (s *Stores) Kind() string {
	if s.cfg.Kind == "" {
		return StoreMemory
	}
	return s.cfg.Kind
}

// Factory returns a planner.StoreFactory bound to s.
func (s *Stores) Factory() planner.StoreFactory {
	return s.New
}

// New creates a fresh, empty store.
func (s *Stores) New(ctx context.Context) (ports.NodeStore, error) {
	namespace := fmt.Sprintf("%s/%d/", s.run, s.seq.Add(1))

	switch {
	case s.client != nil:
		if err := s.client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", s.cfg.Redis.Addr, err)
		}
		store := redis.NewFromClient(s.client,
			redis.WithPrefix(s.cfg.Redis.Prefix+namespace),
			redis.WithTTL(s.cfg.Redis.TTL),
			redis.WithCapacity(s.cfg.Capacity),
		)
		return &scoped{NodeStore: store, clear: store.Clear}, nil

	case s.db != nil:
		store := badger.New(s.db,
			badger.WithPrefix(badger.DefaultPrefix+namespace),
			badger.WithCapacity(s.cfg.Capacity),
		)
		return &scoped{NodeStore: store, clear: store.Clear}, nil
	}

	return memory.NewStore(memory.WithCapacity(s.cfg.Capacity)), nil
}

// Close releases the backend connection.
func (s *Stores) Close() error {
	switch {
	case s.client != nil:
		return s.client.Close()
	case s.db != nil:
		return s.db.Close()
	}
	return nil
}

// scoped drops its namespace on Close and leaves the shared backend open.
type scoped struct {
	ports.NodeStore
	clear func(context.Context) error
}

func (s *scoped) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.clear(ctx)
}
