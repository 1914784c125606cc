package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
)

// ActionBuilder provides a fluent API for configuring an action schema.
type ActionBuilder struct {
	schema  domain.Schema
	builder *Builder
}

// Params declares parameters as "name" or "name:type".
func (a *ActionBuilder) Params(params ...string) *ActionBuilder {
	for _, p := range params {
		name, typ, _ := strings.Cut(p, ":")
		name = strings.TrimPrefix(strings.TrimSpace(name), domain.VarPrefix)
		if name == "" {
			a.builder.errs = append(a.builder.errs, fmt.Errorf("%s: empty parameter in %q", a.schema.Name, p))
			continue
		}
		a.schema.Params = append(a.schema.Params, domain.Param{Name: name, Type: strings.TrimSpace(typ)})
	}
	return a
}

// Pre adds preconditions.
func (a *ActionBuilder) Pre(atoms ...string) *ActionBuilder {
	a.schema.Pre = append(a.schema.Pre, a.builder.parse(atoms)...)
	return a
}

// Add adds add effects.
func (a *ActionBuilder) Add(atoms ...string) *ActionBuilder {
	a.schema.Add = append(a.schema.Add, a.builder.parse(atoms)...)
	return a
}

// Del adds delete effects.
func (a *ActionBuilder) Del(atoms ...string) *ActionBuilder {
	a.schema.Del = append(a.schema.Del, a.builder.parse(atoms)...)
	return a
}

// Cost sets the cost of each application (default 1).
func (a *ActionBuilder) Cost(c float64) *ActionBuilder {
	a.schema.Cost = c
	return a
}

// Done returns to the problem builder.
func (a *ActionBuilder) Done() *Builder {
	return a.builder
}
