package domain

import (
	"fmt"
	"strings"
)

// Param is a typed schema parameter. An empty Type accepts any object.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Object is a domain object available for grounding.
type Object struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Schema is a parameterised action template.
// Atoms refer to parameters through variables, e.g. NewFact("at", Var("from")).
type Schema struct {
	Name   string
	Params []Param
	Pre    []Fact
	Add    []Fact
	Del    []Fact

	// Cost of every ground instance. Zero means the default unit cost.
	Cost float64
}

// StepCost returns the effective cost of one application.
func (s Schema) StepCost() float64 {
	if s.Cost == 0 {
		return 1
	}
	return s.Cost
}

// Validate checks that every atom only references declared parameters.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: schema without name", ErrInvalidSchema)
	}
	if s.Cost < 0 {
		return fmt.Errorf("%w: %s has negative cost %v", ErrInvalidSchema, s.Name, s.Cost)
	}
	declared := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		v := Var(p.Name)
		if declared[v] {
			return fmt.Errorf("%w: %s declares parameter %q twice", ErrInvalidSchema, s.Name, p.Name)
		}
		declared[v] = true
	}
	for _, group := range [][]Fact{s.Pre, s.Add, s.Del} {
		for _, f := range group {
			for _, v := range f.Vars() {
				if !declared[v] {
					return fmt.Errorf("%w: %s uses undeclared parameter %s in %s", ErrInvalidSchema, s.Name, v, f)
				}
			}
		}
	}
	return nil
}

// GroundAction is a schema with every parameter bound to an object.
type GroundAction struct {
	Schema string   `json:"schema"`
	Args   []string `json:"args,omitempty"`
	Pre    []Fact   `json:"-"`
	Add    []Fact   `json:"-"`
	Del    []Fact   `json:"-"`
	Cost   float64  `json:"cost"`
}

// Name renders the action as schema(arg1,arg2).
func (a GroundAction) Name() string {
	return a.Schema + "(" + strings.Join(a.Args, ",") + ")"
}

// String implements fmt.Stringer.
func (a GroundAction) String() string {
	return a.Name()
}

// Ground produces one ground action per assignment of objects to the schema parameters.
//
// Enumeration is the cross product of the typed parameter domains in parameter order,
// last parameter varying fastest, objects in the order given. The result is therefore
// deterministic for a given object slice.
func Ground(schema Schema, objects []Object) ([]GroundAction, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	domains := make([][]string, len(schema.Params))
	for i, p := range schema.Params {
		for _, o := range objects {
			if p.Type == "" || p.Type == o.Type {
				domains[i] = append(domains[i], o.Name)
			}
		}
		if len(domains[i]) == 0 {
			// An empty parameter domain means no instance exists.
			return nil, nil
		}
	}

	var out []GroundAction
	idx := make([]int, len(domains))
	for {
		args := make([]string, len(domains))
		b := make(Binding, len(domains))
		for i, d := range domains {
			args[i] = d[idx[i]]
			b[Var(schema.Params[i].Name)] = args[i]
		}
		out = append(out, instantiate(schema, args, b))

		// Odometer increment, rightmost first.
		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(domains[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out, nil
}

func instantiate(s Schema, args []string, b Binding) GroundAction {
	return GroundAction{
		Schema: s.Name,
		Args:   args,
		Pre:    bindAll(s.Pre, b),
		Add:    bindAll(s.Add, b),
		Del:    bindAll(s.Del, b),
		Cost:   s.StepCost(),
	}
}

func bindAll(facts []Fact, b Binding) []Fact {
	if len(facts) == 0 {
		return nil
	}
	out := make([]Fact, len(facts))
	for i, f := range facts {
		out[i] = f.Bind(b)
	}
	return out
}
