// Package samples bundles ready-made planning problems for the CLI and the HTTP server.
package samples

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/ports"
)

// BuildFunc builds a problem from decoded parameters.
type BuildFunc func(params map[string]any) (*domain.Problem, error)

// Sample is a named problem generator.
type Sample struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Defaults    map[string]any `json:"defaults"`

	// DefaultHeuristic is used when the caller does not pick one.
	DefaultHeuristic string `json:"default_heuristic,omitempty"`

	// Heuristics are problem-specific estimators, resolved before the built-in ones.
	Heuristics map[string]ports.HeuristicFactory `json:"-"`

	build BuildFunc
}

// Size limits keep eager grounding of a sample within memory.
const (
	MaxBoardSide = 5
	MaxSteps     = 100_000
	MaxRooms     = 256
	MaxBlocks    = 16
)

// Build creates the problem. Missing parameters take their defaults.
func (s *Sample) Build(params map[string]any) (*domain.Problem, error) {
	merged := make(map[string]any, len(s.Defaults)+len(params))
	for k, v := range s.Defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	p, err := s.build(merged)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", s.Name, err)
	}
	return p, nil
}

// Heuristic resolves a problem-specific heuristic. It satisfies config.Resolver.
func (s *Sample) Heuristic(name string) (ports.HeuristicFactory, bool) {
	h, ok := s.Heuristics[name]
	return h, ok
}

// Registry manages the available samples.
type Registry struct {
	mu      sync.RWMutex
	samples map[string]*Sample
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		samples: make(map[string]*Sample),
	}
}

// Default returns a registry holding the built-in samples.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Rooms())
	r.Register(Puzzle())
	r.Register(Blocks())
	return r
}

// Register adds a sample to the registry.
// If a sample with the same name exists, it is overwritten.
func (r *Registry) Register(s *Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[s.Name] = s
}

// Get looks up a sample by name.
func (r *Registry) Get(name string) (*Sample, error) {
	r.mu.RLock()
	s, ok := r.samples[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("sample not found: %s", name)
	}
	return s, nil
}

// List returns the samples sorted by name.
func (r *Registry) List() []*Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sample, 0, len(r.samples))
	for _, s := range r.samples {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
