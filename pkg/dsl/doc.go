/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing planning problems.

It allows developers to define domains using a fluent builder instead of assembling
domain.Schema and domain.Fact values by hand. It is a Go API, not a file format.

Example usage:

	b := dsl.New("rooms")
	b.Objects("room", "A", "B", "C")

	b.Action("move").
		Params("x:room", "y:room").
		Pre("at(?x)", "conn(?x,?y)").
		Add("at(?y)").
		Del("at(?x)")

	b.Init("at(A)", "conn(A,B)", "conn(B,C)").
		Goal("at(C)")

	problem, err := b.Build()
*/
package dsl
