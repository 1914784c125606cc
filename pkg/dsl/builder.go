package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
)

// Builder manages problem construction.
// Atoms are written in canonical form, e.g. "at(?x)" or "conn(A,B)".
// Parse errors are collected and reported by Build.
type Builder struct {
	name    string
	objects []domain.Object
	actions []*ActionBuilder
	byName  map[string]*ActionBuilder
	init    []domain.Fact
	goal    domain.Goal
	errs    []error
}

// New creates a new problem builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		byName: make(map[string]*ActionBuilder),
	}
}

// Objects declares objects of the given type. An empty type declares untyped objects.
func (b *Builder) Objects(typ string, names ...string) *Builder {
	for _, n := range names {
		b.objects = append(b.objects, domain.Object{Name: n, Type: typ})
	}
	return b
}

// Action creates a new action schema.
// If the schema already exists, it returns the existing builder.
func (b *Builder) Action(name string) *ActionBuilder {
	if ab, ok := b.byName[name]; ok {
		return ab
	}
	ab := &ActionBuilder{
		schema:  domain.Schema{Name: name},
		builder: b,
	}
	b.byName[name] = ab
	b.actions = append(b.actions, ab)
	return ab
}

// Init adds facts to the initial state.
func (b *Builder) Init(atoms ...string) *Builder {
	b.init = append(b.init, b.parse(atoms)...)
	return b
}

// InitFacts adds already constructed facts to the initial state.
func (b *Builder) InitFacts(facts ...domain.Fact) *Builder {
	b.init = append(b.init, facts...)
	return b
}

// Goal adds facts to the goal conjunction.
func (b *Builder) Goal(atoms ...string) *Builder {
	b.goal = append(b.goal, b.parse(atoms)...)
	return b
}

// GoalFacts adds already constructed facts to the goal conjunction.
func (b *Builder) GoalFacts(facts ...domain.Fact) *Builder {
	b.goal = append(b.goal, facts...)
	return b
}

func (b *Builder) parse(atoms []string) []domain.Fact {
	out := make([]domain.Fact, 0, len(atoms))
	for _, a := range atoms {
		f, err := domain.ParseFact(a)
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}
		out = append(out, f)
	}
	return out
}

// Build compiles and validates the problem.
func (b *Builder) Build() (*domain.Problem, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidProblem, errors.Join(b.errs...))
	}

	init, err := domain.NewStateChecked(b.init...)
	if err != nil {
		return nil, err
	}

	schemas := make([]domain.Schema, len(b.actions))
	for i, ab := range b.actions {
		schemas[i] = ab.schema
	}

	p := &domain.Problem{
		Name:    b.name,
		Objects: append([]domain.Object(nil), b.objects...),
		Schemas: schemas,
		Init:    init,
		Goal:    append(domain.Goal(nil), b.goal...),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
