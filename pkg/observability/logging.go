package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/planner/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger.
// Node events are logged at Debug, search events at Info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	search := func(ctx context.Context, e *domain.SearchEvent) {
		attrs := []any{
			"problem", e.Problem,
			"strategy", e.Strategy,
			"status", e.Status,
		}
		if e.Type == domain.EventSearchEnd {
			attrs = append(attrs, "expanded", e.Stats.Expanded, "generated", e.Stats.Generated)
			if e.Reason != domain.ReasonNone {
				attrs = append(attrs, "reason", e.Reason)
			}
		}
		logger.InfoContext(ctx, string(e.Type), attrs...)
	}
	node := func(ctx context.Context, e *domain.NodeEvent) {
		if !logger.Enabled(ctx, slog.LevelDebug) {
			return
		}
		attrs := []any{
			"depth", e.Node.Depth,
			"cost", e.Node.Cost,
			"estimate", e.Node.Estimate,
		}
		if e.Node.Action != nil {
			attrs = append(attrs, "action", e.Node.Action.Name())
		}
		logger.DebugContext(ctx, string(e.Type), attrs...)
	}
	return domain.LifecycleHooks{
		OnSearchStart:  search,
		OnNodeExpand:   node,
		OnNodeGenerate: node,
		OnSearchEnd:    search,
	}
}
