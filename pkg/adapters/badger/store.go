// Package badger provides a node store backed by an embedded BadgerDB.
//
// It serves search spaces that outgrow RAM: nodes live in the LSM tree on disk and
// only the frontier stays in memory. InMemoryConfig is meant for tests.
package badger

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/dgraph-io/badger/v4"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "planner/nodes/"

	defaultMaxRetries = 64
)

// Config holds configuration for a BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logs. If nil, they are discarded.
	Logger *slog.Logger
}

// InMemoryConfig returns configuration for tests: no disk I/O, no sync.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open creates and opens a BadgerDB instance with the given configuration.
// The caller must Close the returned database.
func Open(cfg Config) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

// Store implements ports.NodeStore on BadgerDB.
//
// Insert runs in one update transaction that also bumps a counter key. Concurrent
// inserts of the same state conflict at commit and are retried, so the loser
// observes domain.ErrDuplicateNode.
type Store struct {
	db         *badger.DB
	prefix     []byte
	capacity   int
	maxRetries int
	owned      bool
}

type Option func(*Store)

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = []byte(prefix)
	}
}

// WithCapacity bounds the number of nodes per namespace. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// WithMaxRetries bounds commit retries on transaction conflicts.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		s.maxRetries = n
	}
}

// New wraps an open database. The caller keeps ownership of db.
func New(db *badger.DB, opts ...Option) *Store {
	s := &Store{
		db:         db,
		prefix:     []byte(DefaultPrefix),
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenStore opens a database from cfg and wraps it. Close releases the database.
func OpenStore(cfg Config, opts ...Option) (*Store, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	s := New(db, opts...)
	s.owned = true
	return s, nil
}

func (s *Store) key(stateKey string) []byte {
	sum := sha256.Sum256([]byte(stateKey))
	k := make([]byte, 0, len(s.prefix)+len(sum)+1)
	k = append(k, s.prefix...)
	k = append(k, 'n')
	return append(k, sum[:]...)
}

func (s *Store) countKey() []byte {
	return append(append([]byte(nil), s.prefix...), 'c')
}

// Lookup retrieves the node stored for the state.
func (s *Store) Lookup(ctx context.Context, state domain.State) (*domain.Node, bool, error) {
	return s.get(ctx, state.Key())
}

func (s *Store) get(_ context.Context, stateKey string) (*domain.Node, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(stateKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read node: %w", err)
	}

	node, err := ports.DecodeNode(data)
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
	key := s.key(node.Key())

	for attempt := 0; ; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			if _, err := txn.Get(key); err == nil {
				return domain.ErrDuplicateNode
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			count, err := s.count(txn)
			if err != nil {
				return err
			}
			if s.capacity > 0 && count >= uint64(s.capacity) {
				return domain.ErrCapacityExceeded
			}

			if err := txn.Set(key, data); err != nil {
				return err
			}
			return txn.Set(s.countKey(), binary.BigEndian.AppendUint64(nil, count+1))
		})
		if !errors.Is(err, badger.ErrConflict) || attempt >= s.maxRetries {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDuplicateNode), errors.Is(err, domain.ErrCapacityExceeded):
		return err
	}
	return fmt.Errorf("failed to insert node: %w", err)
}

func (s *Store) count(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(s.countKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt node counter (%d bytes)", len(val))
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

// ReconstructPath follows parent keys back to the root.
func (s *Store) ReconstructPath(ctx context.Context, node *domain.Node) ([]domain.PathStep, error) {
	return ports.WalkPath(ctx, node, s.get)
}

// Len returns the number of nodes in the namespace.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = s.count(txn)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read node count: %w", err)
	}
	return int(n), nil
}

// Clear deletes every key of the namespace.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.DropPrefix(s.prefix); err != nil {
		return fmt.Errorf("failed to clear namespace: %w", err)
	}
	return nil
}

// Close releases the database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
