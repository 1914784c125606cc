package search

import (
	"container/heap"
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
)

// frontier holds discovered, not yet expanded nodes in strategy order.
type frontier interface {
	// PushAll adds the children of one expansion, given in grounding order.
	PushAll(nodes []*domain.Node)
	Pop() *domain.Node
	Len() int
}

func newFrontier(strategy domain.Strategy, weight float64) (frontier, error) {
	switch strategy {
	case domain.BreadthFirst:
		return &fifo{}, nil
	case domain.DepthFirst:
		return &lifo{}, nil
	case domain.BestFirst:
		return newPriority(func(n *domain.Node) float64 { return n.Cost + weight*n.Estimate }), nil
	case domain.Greedy:
		return newPriority(func(n *domain.Node) float64 { return n.Estimate }), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, strategy)
}

// fifo is a queue for breadth-first search.
type fifo struct {
	items []*domain.Node
	head  int
}

func (q *fifo) PushAll(nodes []*domain.Node) {
	q.items = append(q.items, nodes...)
}

func (q *fifo) Pop() *domain.Node {
	n := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append([]*domain.Node(nil), q.items[q.head:]...)
		q.head = 0
	}
	return n
}

func (q *fifo) Len() int { return len(q.items) - q.head }

// lifo is a stack for depth-first search.
type lifo struct {
	items []*domain.Node
}

// PushAll pushes in reverse so the first child is popped first.
func (s *lifo) PushAll(nodes []*domain.Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		s.items = append(s.items, nodes[i])
	}
}

func (s *lifo) Pop() *domain.Node {
	n := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return n
}

func (s *lifo) Len() int { return len(s.items) }

// priority orders nodes by key, lowest first. Equal keys pop in insertion order.
type priority struct {
	pq  priorityQueue
	key func(*domain.Node) float64
	seq uint64
}

func newPriority(key func(*domain.Node) float64) *priority {
	p := &priority{key: key}
	heap.Init(&p.pq)
	return p
}

func (p *priority) PushAll(nodes []*domain.Node) {
	for _, n := range nodes {
		heap.Push(&p.pq, &item{node: n, priority: p.key(n), seq: p.seq})
		p.seq++
	}
}

func (p *priority) Pop() *domain.Node {
	return heap.Pop(&p.pq).(*item).node
}

func (p *priority) Len() int { return p.pq.Len() }

type item struct {
	node     *domain.Node
	priority float64
	seq      uint64
	index    int
}

type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}
