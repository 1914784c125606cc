package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart  EventType = "search_start"
	EventNodeExpand   EventType = "node_expand"
	EventNodeGenerate EventType = "node_generate"
	EventSearchEnd    EventType = "search_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Problem   string    `json:"problem"`
	Strategy  Strategy  `json:"strategy"`
}

// NodeEvent reports the expansion or generation of a node.
type NodeEvent struct {
	EventBase
	Node *Node `json:"-"`
}

// SearchEvent reports the start or end of a search.
type SearchEvent struct {
	EventBase
	Status SearchStatus `json:"status"`
	Reason AbortReason  `json:"reason,omitempty"`
	Stats  Stats        `json:"stats"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnSearchStart  func(context.Context, *SearchEvent)
	OnNodeExpand   func(context.Context, *NodeEvent)
	OnNodeGenerate func(context.Context, *NodeEvent)
	OnSearchEnd    func(context.Context, *SearchEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSearchStart:  chain(h.OnSearchStart, other.OnSearchStart),
		OnNodeExpand:   chain(h.OnNodeExpand, other.OnNodeExpand),
		OnNodeGenerate: chain(h.OnNodeGenerate, other.OnNodeGenerate),
		OnSearchEnd:    chain(h.OnSearchEnd, other.OnSearchEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
