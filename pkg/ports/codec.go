package ports

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/planner/pkg/domain"
)

// Node records are the serialized form used by external node stores.
// Facts are stored structurally (name + args) so symbols may contain any character.

type factRecord struct {
	Name string   `json:"n"`
	Args []string `json:"a,omitempty"`
}

type actionRecord struct {
	Schema string       `json:"schema"`
	Args   []string     `json:"args,omitempty"`
	Pre    []factRecord `json:"pre,omitempty"`
	Add    []factRecord `json:"add,omitempty"`
	Del    []factRecord `json:"del,omitempty"`
	Cost   float64      `json:"cost"`
}

type nodeRecord struct {
	State    []factRecord  `json:"state"`
	Parent   string        `json:"parent,omitempty"`
	Action   *actionRecord `json:"action,omitempty"`
	Cost     float64       `json:"cost"`
	Estimate float64       `json:"estimate"`
	Depth    int           `json:"depth"`
}

// EncodeNode serializes a node to JSON.
func EncodeNode(n *domain.Node) ([]byte, error) {
	rec := nodeRecord{
		State:    encodeFacts(n.State.Facts()),
		Parent:   n.Parent,
		Cost:     n.Cost,
		Estimate: n.Estimate,
		Depth:    n.Depth,
	}
	if n.Action != nil {
		rec.Action = &actionRecord{
			Schema: n.Action.Schema,
			Args:   n.Action.Args,
			Pre:    encodeFacts(n.Action.Pre),
			Add:    encodeFacts(n.Action.Add),
			Del:    encodeFacts(n.Action.Del),
			Cost:   n.Action.Cost,
		}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node: %w", err)
	}
	return data, nil
}

// DecodeNode rebuilds a node from EncodeNode output.
func DecodeNode(data []byte) (*domain.Node, error) {
	var rec nodeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode node: %w", err)
	}
	state, err := domain.NewStateChecked(decodeFacts(rec.State)...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode node state: %w", err)
	}
	n := &domain.Node{
		State:    state,
		Parent:   rec.Parent,
		Cost:     rec.Cost,
		Estimate: rec.Estimate,
		Depth:    rec.Depth,
	}
	if rec.Action != nil {
		n.Action = &domain.GroundAction{
			Schema: rec.Action.Schema,
			Args:   rec.Action.Args,
			Pre:    decodeFacts(rec.Action.Pre),
			Add:    decodeFacts(rec.Action.Add),
			Del:    decodeFacts(rec.Action.Del),
			Cost:   rec.Action.Cost,
		}
	}
	return n, nil
}

func encodeFacts(facts []domain.Fact) []factRecord {
	if len(facts) == 0 {
		return nil
	}
	out := make([]factRecord, len(facts))
	for i, f := range facts {
		out[i] = factRecord{Name: f.Name(), Args: f.Args()}
	}
	return out
}

func decodeFacts(recs []factRecord) []domain.Fact {
	if len(recs) == 0 {
		return nil
	}
	out := make([]domain.Fact, len(recs))
	for i, r := range recs {
		out[i] = domain.NewFact(r.Name, r.Args...)
	}
	return out
}
