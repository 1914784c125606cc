package samples

import (
	"fmt"

	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/dsl"
)

type blocksParams struct {
	Blocks []string `yaml:"blocks"`
}

// Blocks is the four-operator blocks world. The blocks start as one tower
// (first block at the bottom) and must be restacked in reverse order.
func Blocks() *Sample {
	return &Sample{
		Name:        "blocks",
		Description: "Blocks world: reverse a tower with a single gripper",
		Defaults: map[string]any{
			"blocks": []string{"A", "B", "C"},
		},
		DefaultHeuristic: "hadd",
		build:            buildBlocks,
	}
}

func buildBlocks(raw map[string]any) (*domain.Problem, error) {
	var p blocksParams
	if err := config.Decode(raw, &p); err != nil {
		return nil, err
	}
	if len(p.Blocks) == 0 {
		return nil, fmt.Errorf("need at least one block")
	}
	if len(p.Blocks) > MaxBlocks {
		return nil, fmt.Errorf("at most %d blocks are allowed, got %d", MaxBlocks, len(p.Blocks))
	}

	b := dsl.New(fmt.Sprintf("blocks-%d", len(p.Blocks)))
	b.Objects("block", p.Blocks...)

	b.Action("pickup").
		Params("x:block").
		Pre("clear(?x)", "ontable(?x)", "handempty()").
		Add("holding(?x)").
		Del("clear(?x)", "ontable(?x)", "handempty()")

	b.Action("putdown").
		Params("x:block").
		Pre("holding(?x)").
		Add("clear(?x)", "ontable(?x)", "handempty()").
		Del("holding(?x)")

	b.Action("stack").
		Params("x:block", "y:block").
		Pre("holding(?x)", "clear(?y)").
		Add("on(?x,?y)", "clear(?x)", "handempty()").
		Del("holding(?x)", "clear(?y)")

	b.Action("unstack").
		Params("x:block", "y:block").
		Pre("on(?x,?y)", "clear(?x)", "handempty()").
		Add("holding(?x)", "clear(?y)").
		Del("on(?x,?y)", "clear(?x)", "handempty()")

	n := len(p.Blocks)
	b.InitFacts(domain.NewFact("handempty"), domain.NewFact("ontable", p.Blocks[0]), domain.NewFact("clear", p.Blocks[n-1]))
	for i := 1; i < n; i++ {
		b.InitFacts(domain.NewFact("on", p.Blocks[i], p.Blocks[i-1]))
	}

	b.GoalFacts(domain.NewFact("ontable", p.Blocks[n-1]))
	for i := n - 1; i > 0; i-- {
		b.GoalFacts(domain.NewFact("on", p.Blocks[i-1], p.Blocks[i]))
	}
	return b.Build()
}
