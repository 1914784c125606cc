package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/planner/internal/search"
	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// StoreFactory provides a fresh node store for each search.
type StoreFactory func(ctx context.Context) (ports.NodeStore, error)

// Engine is the high-level entry point for the planner library.
// It wraps the search controller and provides a simplified API for consumers.
//
// An Engine is safe for concurrent use: every Solve gets its own frontier and store.
type Engine struct {
	search   *search.Engine
	cfg      search.Config
	newStore StoreFactory
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls chain the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithStrategy selects the frontier ordering (default breadth-first).
func WithStrategy(s domain.Strategy) Option {
	return func(e *Engine) {
		e.cfg.Strategy = s
	}
}

// WithHeuristic sets the heuristic factory used by informed strategies (default zero).
func WithHeuristic(h ports.HeuristicFactory) Option {
	return func(e *Engine) {
		e.cfg.Heuristic = h
	}
}

// WithWeight scales the heuristic in best-first keys (weighted A*).
func WithWeight(w float64) Option {
	return func(e *Engine) {
		e.cfg.Weight = w
	}
}

// WithMaxNodes aborts a search after n expansions.
func WithMaxNodes(n int) Option {
	return func(e *Engine) {
		e.cfg.MaxNodes = n
	}
}

// WithTimeout aborts a search after d of wall-clock time.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.cfg.Timeout = d
	}
}

// WithStoreFactory replaces the default in-memory node store.
func WithStoreFactory(f StoreFactory) Option {
	return func(e *Engine) {
		e.newStore = f
	}
}

// New initializes a new planner Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{cfg: search.DefaultConfig()}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.newStore == nil {
		eng.newStore = func(context.Context) (ports.NodeStore, error) {
			return memory.NewStore(), nil
		}
	}

	eng.search = search.NewEngine(
		search.WithLogger(eng.logger),
		search.WithHooks(eng.hooks),
	)
	return eng
}

// Solve searches for a plan using a fresh store from the configured factory.
// Stores implementing io.Closer are closed when the search returns.
//
// The Result is always non-nil when err is nil. err is reserved for misuse
// (invalid problem or configuration) and store construction failures.
func (e *Engine) Solve(ctx context.Context, p *domain.Problem) (*domain.Result, error) {
	store, err := e.newStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create node store: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				e.logger.Warn("failed to close node store", "error", err)
			}
		}()
	}
	return e.SolveWith(ctx, p, store)
}

// SolveWith searches for a plan using the given store.
func (e *Engine) SolveWith(ctx context.Context, p *domain.Problem, store ports.NodeStore) (*domain.Result, error) {
	return e.search.Search(ctx, p, store, e.cfg)
}

// Strategy returns the configured strategy.
func (e *Engine) Strategy() domain.Strategy {
	return e.cfg.Strategy
}
