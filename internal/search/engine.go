// Package search implements the state-space search controller.
//
// A search moves READY → RUNNING → {SUCCEEDED, FAILED, ABORTED}. One Search call
// owns its frontier exclusively; the Engine value itself holds no per-search
// state, so a single Engine can serve concurrent searches with separate stores.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// Config selects the strategy and budgets of one search.
type Config struct {
	Strategy domain.Strategy

	// Heuristic builds the estimator for informed strategies. Nil means zero.
	Heuristic ports.HeuristicFactory

	// Weight scales h in best-first keys (g + Weight·h). Zero means 1.
	Weight float64

	// MaxNodes bounds the number of expanded nodes. Zero means unbounded.
	MaxNodes int

	// Timeout bounds wall-clock time. Zero means no deadline besides ctx.
	Timeout time.Duration
}

// DefaultConfig returns an unbounded breadth-first configuration.
func DefaultConfig() Config {
	return Config{Strategy: domain.BreadthFirst, Weight: 1}
}

// Validate rejects unknown strategies and negative budgets.
func (c Config) Validate() error {
	if c.Strategy != "" {
		if _, err := newFrontier(c.Strategy, 1); err != nil {
			return err
		}
	}
	if c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
		return fmt.Errorf("invalid weight %v", c.Weight)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("invalid max nodes %d", c.MaxNodes)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = domain.BreadthFirst
	}
	if c.Weight == 0 {
		c.Weight = 1
	}
	return c
}

// Engine is the search controller.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls chain the hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// NewEngine creates a search controller.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Search runs one search of problem against store.
//
// Ordinary outcomes (plan found, exhausted, aborted, unreachable goal) are reported
// through the Result. An error is returned only for misuse: an invalid configuration,
// a malformed problem (domain.ErrInvalidProblem) or an inconsistent transition
// (domain.ErrInvalidTransition).
func (e *Engine) Search(ctx context.Context, problem *domain.Problem, store ports.NodeStore, cfg Config) (*domain.Result, error) {
	started := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	if store == nil {
		return nil, errors.New("node store is required")
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	g, err := domain.GroundProblem(problem)
	if err != nil {
		return nil, err
	}

	f, err := newFrontier(cfg.Strategy, cfg.Weight)
	if err != nil {
		return nil, err
	}

	r := &run{
		engine:    e,
		problem:   problem,
		grounding: g,
		store:     store,
		cfg:       cfg,
		frontier:  f,
		started:   started,
		logger:    e.logger.With("problem", problem.Name, "strategy", string(cfg.Strategy)),
		result:    &domain.Result{Status: domain.StatusReady},
	}
	return r.execute(ctx)
}

// run is the state of one Search call.
type run struct {
	engine    *Engine
	problem   *domain.Problem
	grounding *domain.Grounding
	store     ports.NodeStore
	cfg       Config
	frontier  frontier
	heuristic ports.Heuristic
	started   time.Time
	logger    *slog.Logger
	result    *domain.Result
}

func (r *run) execute(ctx context.Context) (*domain.Result, error) {
	// Setup errors return before any lifecycle event.
	if r.cfg.Heuristic == nil {
		r.heuristic = ports.HeuristicFunc(func(domain.State, domain.Goal) float64 { return 0 })
	} else {
		h, err := r.cfg.Heuristic(r.grounding)
		if err != nil {
			return nil, fmt.Errorf("failed to build heuristic: %w", err)
		}
		r.heuristic = h
	}

	r.logger.Info("search started", "actions", r.grounding.Len(), "max_nodes", r.cfg.MaxNodes, "timeout", r.cfg.Timeout)
	r.emitSearch(ctx, domain.EventSearchStart)

	if err := r.grounding.CheckReachable(r.problem.Goal); err != nil {
		return r.fail(ctx, err), nil
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	r.result.Status = domain.StatusRunning

	est, ok := r.estimate(r.problem.Init)
	if !ok {
		r.result.Stats.Dropped++
		return r.fail(ctx, nil), nil
	}
	root := domain.NewRoot(r.problem.Init, est)
	switch err := r.store.Insert(ctx, root); {
	case err == nil:
		r.push([]*domain.Node{root})
	case errors.Is(err, domain.ErrCapacityExceeded):
		r.result.Stats.Dropped++
	case errors.Is(err, domain.ErrDuplicateNode):
		return r.abort(ctx, domain.ReasonStoreFailure, fmt.Errorf("store already holds the initial state: %w", err)), nil
	default:
		return r.storeFailure(ctx, err), nil
	}

	for r.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return r.abort(ctx, reasonFor(err), err), nil
		}

		n := r.frontier.Pop()
		if domain.SatisfiesGoal(n.State, r.problem.Goal) {
			plan, err := Extract(ctx, n, r.store)
			if err != nil {
				return r.storeFailure(ctx, err), nil
			}
			return r.succeed(ctx, plan), nil
		}

		// The goal test does not count against the budget.
		if r.cfg.MaxNodes > 0 && r.result.Stats.Expanded >= r.cfg.MaxNodes {
			return r.abort(ctx, domain.ReasonNodeBudget, nil), nil
		}

		children, reason, err := r.expand(ctx, n)
		if err != nil {
			if reason == domain.ReasonNone {
				return nil, err
			}
			return r.storeFailure(ctx, err), nil
		}
		r.push(children)
	}

	return r.fail(ctx, nil), nil
}

// expand generates the unseen successors of n in grounding order.
// A non-empty reason means the search must abort; an error without reason is a hard fault.
func (r *run) expand(ctx context.Context, n *domain.Node) ([]*domain.Node, domain.AbortReason, error) {
	r.result.Stats.Expanded++
	r.logger.Debug("expanding node", "depth", n.Depth, "cost", n.Cost, "estimate", n.Estimate)
	r.emitNode(ctx, domain.EventNodeExpand, n)

	var children []*domain.Node
	for _, a := range r.grounding.Applicable(n.State) {
		next, err := domain.Apply(n.State, a)
		if err != nil {
			return nil, domain.ReasonNone, err
		}

		_, seen, err := r.store.Lookup(ctx, next)
		if err != nil {
			return nil, domain.ReasonStoreFailure, err
		}
		if seen {
			r.result.Stats.Duplicates++
			continue
		}

		est, ok := r.estimate(next)
		if !ok {
			r.result.Stats.Dropped++
			continue
		}

		child := n.Child(next, a, est)
		switch err := r.store.Insert(ctx, child); {
		case err == nil:
		case errors.Is(err, domain.ErrDuplicateNode):
			// Another writer of a shared store got there first.
			r.result.Stats.Duplicates++
			continue
		case errors.Is(err, domain.ErrCapacityExceeded):
			r.result.Stats.Dropped++
			r.logger.Warn("node store full, dropping branch", "action", a.Name(), "depth", child.Depth)
			continue
		default:
			return nil, domain.ReasonStoreFailure, err
		}

		r.result.Stats.Generated++
		r.emitNode(ctx, domain.EventNodeGenerate, child)
		children = append(children, child)
	}
	return children, domain.ReasonNone, nil
}

// estimate clamps negative values to 0 and reports dead ends (+Inf, NaN) as !ok.
func (r *run) estimate(s domain.State) (float64, bool) {
	h := r.heuristic.Estimate(s, r.problem.Goal)
	if math.IsInf(h, 1) || math.IsNaN(h) {
		return 0, false
	}
	if h < 0 {
		return 0, true
	}
	return h, true
}

func (r *run) push(nodes []*domain.Node) {
	r.frontier.PushAll(nodes)
	if l := r.frontier.Len(); l > r.result.Stats.MaxFrontier {
		r.result.Stats.MaxFrontier = l
	}
}

func reasonFor(err error) domain.AbortReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ReasonDeadline
	}
	return domain.ReasonCanceled
}

// storeFailure aborts after a store error. A store call cut short by the
// search context reports the context's reason instead.
func (r *run) storeFailure(ctx context.Context, err error) *domain.Result {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return r.abort(ctx, reasonFor(ctxErr), err)
	}
	return r.abort(ctx, domain.ReasonStoreFailure, err)
}

func (r *run) succeed(ctx context.Context, plan *domain.Plan) *domain.Result {
	r.result.Status = domain.StatusSucceeded
	r.result.Plan = plan
	return r.finish(ctx)
}

func (r *run) fail(ctx context.Context, err error) *domain.Result {
	r.result.Status = domain.StatusFailed
	r.result.Err = err
	return r.finish(ctx)
}

func (r *run) abort(ctx context.Context, reason domain.AbortReason, err error) *domain.Result {
	r.result.Status = domain.StatusAborted
	r.result.Reason = reason
	r.result.Err = err
	return r.finish(ctx)
}

func (r *run) finish(ctx context.Context) *domain.Result {
	r.result.Stats.Elapsed = time.Since(r.started)

	attrs := []any{
		"status", r.result.Status,
		"expanded", r.result.Stats.Expanded,
		"generated", r.result.Stats.Generated,
		"elapsed", r.result.Stats.Elapsed,
	}
	if r.result.Reason != domain.ReasonNone {
		attrs = append(attrs, "reason", r.result.Reason)
	}
	if r.result.Plan != nil {
		attrs = append(attrs, "plan_len", r.result.Plan.Len(), "plan_cost", r.result.Plan.Cost)
	}
	if r.result.Err != nil {
		attrs = append(attrs, "error", r.result.Err)
	}
	r.logger.Info("search finished", attrs...)

	// End events fire even after cancellation.
	r.emitSearch(context.WithoutCancel(ctx), domain.EventSearchEnd)
	return r.result
}

func (r *run) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Problem:   r.problem.Name,
		Strategy:  r.cfg.Strategy,
	}
}

func (r *run) emitSearch(ctx context.Context, t domain.EventType) {
	hook := r.engine.hooks.OnSearchStart
	if t == domain.EventSearchEnd {
		hook = r.engine.hooks.OnSearchEnd
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.SearchEvent{
		EventBase: r.base(t),
		Status:    r.result.Status,
		Reason:    r.result.Reason,
		Stats:     r.result.Stats,
	})
}

func (r *run) emitNode(ctx context.Context, t domain.EventType, n *domain.Node) {
	hook := r.engine.hooks.OnNodeExpand
	if t == domain.EventNodeGenerate {
		hook = r.engine.hooks.OnNodeGenerate
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{EventBase: r.base(t), Node: n})
}
